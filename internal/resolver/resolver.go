// Package resolver implements the capsule link resolver: it
// turns a `Link` naming another capsule into a parsed `Source` subtree,
// memoizing by capsule name so a cycle terminates at its first revisit
// instead of recursing forever.
package resolver

import (
	"fmt"
	"os"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/parser"
)

// Paths maps a capsule name to the filesystem path of the source file that
// defines it, populated by a capsule discovery walk.
type Paths map[string]string

// Resolver resolves Link nodes against Paths, caching parsed Sources by
// capsule name.
type Resolver struct {
	paths Paths
	sink  *diagnostics.Sink
	cache map[string]*ast.Source
}

// New creates a Resolver over a capsule name -> path map, reporting into
// sink.
func New(paths Paths, sink *diagnostics.Sink) *Resolver {
	return &Resolver{paths: paths, sink: sink, cache: make(map[string]*ast.Source)}
}

// Resolve fills in link.Resolved, reusing the cached parse if the capsule
// was already resolved, and emits a LinkageError leaving Resolved nil if
// the capsule name has no known path. A link that closes a cycle (back to
// a capsule still being resolved) receives that capsule's placeholder
// entry, an empty Source, rather than its finished parse.
func (r *Resolver) Resolve(link *ast.Link) {
	name := link.CapsuleName
	if cached, ok := r.cache[name]; ok {
		link.Resolved = cached
		return
	}

	path, ok := r.paths[name]
	if !ok {
		r.sink.AddSuggested(diagnostics.LinkageError,
			fmt.Sprintf("capsule %q could not be located", name), nil,
			diagnostics.Suggest(name, r.knownNames()))
		return
	}

	// Placeholder inserted before recursing: a cyclic link back to this
	// capsule sees this entry and stops instead of re-parsing.
	placeholder := ast.NewSource(ast.NewLink(link.Pos(), name).Pos())
	r.cache[name] = placeholder

	src, err := r.parseFile(path)
	if err != nil {
		r.sink.Add(diagnostics.LinkageError,
			fmt.Sprintf("capsule %q: %s", name, err), nil)
		delete(r.cache, name)
		return
	}

	r.resolveLinks(src)
	r.cache[name] = src
	link.Resolved = src
}

func (r *Resolver) resolveLinks(src *ast.Source) {
	for _, l := range src.Links {
		r.Resolve(l)
	}
}

func (r *Resolver) parseFile(path string) (*ast.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.New(string(data), r.sink).Parse(), nil
}

func (r *Resolver) knownNames() []string {
	names := make([]string, 0, len(r.paths))
	for n := range r.paths {
		names = append(names, n)
	}
	return names
}
