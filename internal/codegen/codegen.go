package codegen

import (
	"strconv"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
)

// parseThetaNumber converts a NumberLiteral's verbatim source text into
// the i64 value it lowers to. Number maps to i64, so a literal written
// with a decimal point truncates toward zero.
func parseThetaNumber(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Generate walks a type-checked Source and emits a binary WebAssembly
// module. It returns false, leaving diagnostics in sink, if any
// function could not be generated (an IntegrityError).
func Generate(src *ast.Source, sink *diagnostics.Sink) ([]byte, bool) {
	m, ok := GenerateModule(src, sink)
	return m.Encode(), ok
}

// GenerateModule is Generate before binary encoding: it returns the
// in-memory module so callers that want a textual rendering (the CLI's
// --emitWAT dump) can pretty-print it without round-tripping through the
// binary format.
func GenerateModule(src *ast.Source, sink *diagnostics.Sink) (*Module, bool) {
	m := NewModule()
	powIdx := registerPow(m)
	m.Export(powIdx) // pow is always among the module's exports

	ok := true
	switch v := src.Value.(type) {
	case nil:
		// An empty source still produces a valid module with just the
		// built-in; there is nothing to synthesize a main from.
	case *ast.Capsule:
		ok = genCapsule(m, sink, v)
	default:
		ok = genMain(m, sink, v)
	}
	return m, ok
}

// funcSpec is a capsule-level function-typed assignment gathered in the
// first (declare) pass so codegen can resolve calls between mutually
// recursive functions before any body has been emitted.
type funcSpec struct {
	assign *ast.Assignment
	fd     *ast.FunctionDeclaration
	idx    int
	result *ast.TypeDeclaration
}

func genCapsule(m *Module, sink *diagnostics.Sink, cap *ast.Capsule) bool {
	var specs []*funcSpec
	for _, elem := range cap.Elements {
		assign, ok := elem.(*ast.Assignment)
		if !ok {
			continue
		}
		fd, ok := assign.Right.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		paramTypes := make([]*ast.TypeDeclaration, len(fd.Params.Elements))
		wasmParams := make([]ValType, len(fd.Params.Elements))
		failed := false
		for i, p := range fd.Params.Elements {
			ident := p.(*ast.Identifier)
			paramTypes[i] = ident.Type
			vt, err := valType(ident.Type)
			if err != nil {
				sink.Add(diagnostics.IntegrityError, err.Error(), nil)
				failed = true
				continue
			}
			wasmParams[i] = vt
		}
		if failed {
			return false
		}
		resultType := assign.Left.Type.Right // Function<Args,Ret>.Right is Ret
		resultVal, err := valType(resultType)
		if err != nil {
			sink.Add(diagnostics.IntegrityError, err.Error(), nil)
			return false
		}
		name := mangle(assign.Left.Name, paramTypes)
		idx, err := m.Declare(name, wasmParams, []ValType{resultVal})
		if err != nil {
			sink.Add(diagnostics.IntegrityError, err.Error(), nil)
			return false
		}
		m.Export(idx) // every function declared directly in a capsule is exported
		specs = append(specs, &funcSpec{assign: assign, fd: fd, idx: idx, result: resultType})
	}

	ok := true
	for _, spec := range specs {
		params := make([]*ast.Identifier, len(spec.fd.Params.Elements))
		for i, p := range spec.fd.Params.Elements {
			params[i] = p.(*ast.Identifier)
		}
		fg, _ := newFuncGen(m, sink, params)
		fg.emitBody(spec.fd.Definition.Statements, true)
		if fg.failed {
			ok = false
			continue
		}
		m.SetBody(spec.idx, fg.extra, fg.code.Bytes())
	}
	return ok
}

// genMain handles the non-capsule top level.
func genMain(m *Module, sink *diagnostics.Sink, value ast.Node) bool {
	resultVal, err := valType(value.ResolvedType())
	if err != nil {
		sink.Add(diagnostics.IntegrityError, err.Error(), nil)
		return false
	}
	idx, err := m.Declare("main", nil, []ValType{resultVal})
	if err != nil {
		sink.Add(diagnostics.IntegrityError, err.Error(), nil)
		return false
	}
	m.Export(idx)

	fg, _ := newFuncGen(m, sink, nil)
	fg.emitBody([]ast.Node{value}, true)
	if fg.failed {
		return false
	}
	m.SetBody(idx, fg.extra, fg.code.Bytes())
	return true
}
