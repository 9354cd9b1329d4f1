package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

func writeCapsule(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func TestResolveAttachesParsedSource(t *testing.T) {
	dir := t.TempDir()
	mathPath := writeCapsule(t, dir, "math.th", "capsule Math { pi<Number> = 3 }")

	sink := diagnostics.NewSink()
	r := New(Paths{"Math": mathPath}, sink)

	link := ast.NewLink(lexer.Position{Line: 1, Column: 1}, "Math")
	r.Resolve(link)

	require.True(t, sink.Empty())
	require.NotNil(t, link.Resolved)
	cap, ok := link.Resolved.Value.(*ast.Capsule)
	require.True(t, ok)
	assert.Equal(t, "Math", cap.Name)
}

func TestResolveIsMemoized(t *testing.T) {
	dir := t.TempDir()
	mathPath := writeCapsule(t, dir, "math.th", "capsule Math { }")

	sink := diagnostics.NewSink()
	r := New(Paths{"Math": mathPath}, sink)

	first := ast.NewLink(lexer.Position{}, "Math")
	second := ast.NewLink(lexer.Position{}, "Math")
	r.Resolve(first)
	r.Resolve(second)

	require.NotNil(t, first.Resolved)
	assert.Same(t, first.Resolved, second.Resolved)
}

func TestResolveCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	aPath := writeCapsule(t, dir, "a.th", "link B\ncapsule A { }")
	bPath := writeCapsule(t, dir, "b.th", "link A\ncapsule B { }")

	sink := diagnostics.NewSink()
	r := New(Paths{"A": aPath, "B": bPath}, sink)

	link := ast.NewLink(lexer.Position{}, "A")
	r.Resolve(link)

	require.True(t, sink.Empty())
	require.NotNil(t, link.Resolved)
	// A's link to B resolved; B's link back to A hit the in-progress cache
	// entry and stopped instead of recursing forever.
	require.Len(t, link.Resolved.Links, 1)
	assert.NotNil(t, link.Resolved.Links[0].Resolved)
}

func TestResolveMissingCapsuleIsLinkageError(t *testing.T) {
	sink := diagnostics.NewSink()
	r := New(Paths{"Maths": "unused.th"}, sink)

	link := ast.NewLink(lexer.Position{}, "Math")
	r.Resolve(link)

	assert.Nil(t, link.Resolved)
	require.Equal(t, 1, sink.Count(diagnostics.LinkageError))
	// Close names produce a suggestion.
	assert.Equal(t, "Maths", sink.Diagnostics()[0].Suggestion)
}
