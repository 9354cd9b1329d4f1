package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBrackets(t *testing.T) {
	assert.Equal(t, 0, openBrackets("10 + 5"))
	assert.Equal(t, 1, openBrackets("capsule T {"))
	assert.Equal(t, 2, openBrackets("capsule T { f = ("))
	assert.Equal(t, 0, openBrackets("capsule T { }"))
	// Brackets inside strings and comments do not count.
	assert.Equal(t, 0, openBrackets("'{ [ ('"))
	assert.Equal(t, 0, openBrackets("// { ( ["))
	assert.Equal(t, 0, openBrackets("/- { ( [ -/"))
}

func TestReplEvaluatesBalancedBuffer(t *testing.T) {
	var out strings.Builder
	repl := &REPL{
		Comp: New(nil),
		In:   strings.NewReader("10 + 5\n"),
		Out:  &out,
	}
	require.NoError(t, repl.Run())
	assert.Contains(t, out.String(), "15")
}

func TestReplAccumulatesMultiLineBuffer(t *testing.T) {
	input := "capsule T {\nmain<Function<Number>> = () -> 21 * 2\n}\n"
	var out strings.Builder
	repl := &REPL{
		Comp: New(nil),
		In:   strings.NewReader(input),
		Out:  &out,
	}
	require.NoError(t, repl.Run())
	// Continuation prompts while the brace is open, then the result.
	assert.Contains(t, out.String(), ". ")
	assert.Contains(t, out.String(), "42")
}

func TestReplReportsDiagnostics(t *testing.T) {
	var out strings.Builder
	repl := &REPL{
		Comp: New(nil),
		In:   strings.NewReader("capsule T { x<String> = 5 }\n"),
		Out:  &out,
	}
	require.NoError(t, repl.Run())
	assert.Contains(t, out.String(), "TypeError")
}

func TestReplRecoversBetweenInputs(t *testing.T) {
	input := "capsule T { x<String> = 5 }\n10 + 5\n"
	var out strings.Builder
	repl := &REPL{
		Comp: New(nil),
		In:   strings.NewReader(input),
		Out:  &out,
	}
	require.NoError(t, repl.Run())
	assert.Contains(t, out.String(), "TypeError")
	assert.Contains(t, out.String(), "15")
}

func TestReplRecordsHistory(t *testing.T) {
	history, err := OpenHistory(t.TempDir() + "/history.db")
	require.NoError(t, err)
	defer history.Close()

	var out strings.Builder
	repl := &REPL{
		Comp:    New(nil),
		In:      strings.NewReader("10 + 5\ncapsule T { x<String> = 5 }\n"),
		Out:     &out,
		History: history,
	}
	require.NoError(t, repl.Run())

	entries, err := history.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Contains(t, entries[0].Input, "x<String>")
	assert.Equal(t, 1, entries[0].Diagnostics)
	assert.Contains(t, entries[1].Input, "10 + 5")
	assert.Equal(t, 0, entries[1].Diagnostics)
}
