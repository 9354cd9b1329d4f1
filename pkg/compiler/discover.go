package compiler

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/theta-lang/thetac/internal/lexer"
	"github.com/theta-lang/thetac/internal/resolver"
)

// Discover walks root recursively for *.th files and reads the first
// `capsule` keyword of each to populate the capsule-name -> path map the
// link resolver consults. Files without a capsule
// declaration (top-level-expression files) are skipped; when two files
// declare the same capsule the first one found wins.
func Discover(root string) (resolver.Paths, error) {
	paths := make(resolver.Paths)
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.th")
	if err != nil {
		return nil, err
	}
	for _, rel := range matches {
		full := filepath.Join(root, rel)
		name, ok := capsuleName(full)
		if !ok {
			continue
		}
		if _, exists := paths[name]; !exists {
			paths[name] = full
		}
	}
	return paths, nil
}

// DiscoverFS is Discover over an abstract filesystem, used by tests that
// assemble capsule layouts with fstest.MapFS. Paths in the returned map
// are relative to fsys's root.
func DiscoverFS(fsys fs.FS) (resolver.Paths, error) {
	paths := make(resolver.Paths)
	matches, err := doublestar.Glob(fsys, "**/*.th")
	if err != nil {
		return nil, err
	}
	for _, rel := range matches {
		data, err := fs.ReadFile(fsys, rel)
		if err != nil {
			continue
		}
		if name, ok := capsuleNameOf(string(data)); ok {
			if _, exists := paths[name]; !exists {
				paths[name] = rel
			}
		}
	}
	return paths, nil
}

func capsuleName(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return capsuleNameOf(string(data))
}

// capsuleNameOf scans a file's token stream for the first `capsule`
// keyword and returns the identifier that follows it. Lexing rather than
// substring-searching keeps a `capsule` inside a comment or string literal
// from being misread as a declaration.
func capsuleNameOf(source string) (string, bool) {
	toks := lexer.New(source).Tokenize()
	for i, t := range toks {
		if t.Kind == lexer.KEYWORD && t.Lexeme == "capsule" && i+1 < len(toks) &&
			toks[i+1].Kind == lexer.IDENTIFIER {
			return toks[i+1].Lexeme, true
		}
	}
	return "", false
}
