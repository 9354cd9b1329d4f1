// Package compiler is the public facade over the compilation pipeline:
// lexing, parsing, link resolution, optimization, type checking, and
// WebAssembly code generation, orchestrated per phase with the diagnostic
// sink drained between phases. The process-wide singletons the pipeline's
// phases used to share (sink, link cache, capsule map) live on a
// Compilation value instead, constructed at the entry point and dropped at
// the end; the REPL holds one long-lived Compilation.
package compiler

import (
	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/codegen"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
	"github.com/theta-lang/thetac/internal/optimizer"
	"github.com/theta-lang/thetac/internal/parser"
	"github.com/theta-lang/thetac/internal/resolver"
	"github.com/theta-lang/thetac/internal/typecheck"
)

// Compilation owns one compilation's shared state: the diagnostic sink,
// the parsed-link cache, and the capsule name -> file path map.
type Compilation struct {
	Sink     *diagnostics.Sink
	Capsules resolver.Paths
	links    *resolver.Resolver
}

// New creates a Compilation over a capsule map (usually the result of
// Discover). A nil map is valid for sources without link statements.
func New(capsules resolver.Paths) *Compilation {
	sink := diagnostics.NewSink()
	return &Compilation{
		Sink:     sink,
		Capsules: capsules,
		links:    resolver.New(capsules, sink),
	}
}

// Result is what one Compile call produces. Source is always set (possibly
// partial when parsing failed recoverably); Module and Wasm are set only
// when every phase completed without diagnostics.
type Result struct {
	Source *ast.Source
	Module *codegen.Module
	Wasm   []byte
}

// Compile runs the full pipeline over source text. It returns false with
// the failing phase's diagnostics left in the sink when any phase aborted;
// the sink is not cleared on entry, so callers reusing one Compilation
// across inputs (the REPL) call Reset between them.
func (c *Compilation) Compile(source string) (*Result, bool) {
	res := &Result{}

	res.Source = parser.New(source, c.Sink).Parse()
	for _, l := range res.Source.Links {
		c.links.Resolve(l)
	}
	if !c.Sink.Empty() {
		return res, false
	}

	passes := []optimizer.Pass{&optimizer.LiteralInliner{Sink: c.Sink}}
	if !optimizer.Run(passes, res.Source, c.Sink) {
		return res, false
	}

	if !typecheck.New(c.Sink).Check(res.Source) || !c.Sink.Empty() {
		return res, false
	}

	m, ok := codegen.GenerateModule(res.Source, c.Sink)
	if !ok {
		return res, false
	}
	res.Module = m
	res.Wasm = m.Encode()
	return res, true
}

// Tokens lexes source without parsing it, for the CLI's token dump.
func (c *Compilation) Tokens(source string) []lexer.Token {
	return lexer.New(source).Tokenize()
}

// Parse runs the front half of the pipeline only (parse + link
// resolution), for the CLI's AST dump.
func (c *Compilation) Parse(source string) *ast.Source {
	src := parser.New(source, c.Sink).Parse()
	for _, l := range src.Links {
		c.links.Resolve(l)
	}
	return src
}

// Reset drains the diagnostic sink between compilations: invoked by the REPL between inputs so one buffer's
// diagnostics never bleed into the next. The link cache survives a Reset
// on purpose; linked capsules do not change between REPL lines.
func (c *Compilation) Reset() {
	c.Sink.Clear()
}
