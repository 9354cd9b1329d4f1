package codegen

import (
	"fmt"
	"strconv"

	"github.com/theta-lang/thetac/internal/ast"
)

// mangle computes a function's mangled name: base name, arity,
// then the mangled parameter types concatenated in order. Invocations
// compute the identical string from their resolved argument types, so
// overload resolution is a string lookup against the module's function
// namespace rather than anything the type checker needs to track.
func mangle(base string, paramTypes []*ast.TypeDeclaration) string {
	name := base + strconv.Itoa(len(paramTypes))
	for _, t := range paramTypes {
		name += ast.TypeMangle(t)
	}
	return name
}

// valType maps a resolved Theta type to its WebAssembly value type.
// Only Number, Boolean and String are codegen
// supported; anything else is an internal invariant violation this deep
// into the pipeline, since the type checker would already have rejected
// a program using an unsupported type in a codegen-reachable position.
func valType(t *ast.TypeDeclaration) (ValType, error) {
	if t == nil {
		return 0, fmt.Errorf("codegen: nil resolved type")
	}
	switch t.Name {
	case ast.TypeNumber:
		return ValI64, nil
	case ast.TypeBoolean:
		return ValI32, nil
	case ast.TypeString:
		return ValStringRef, nil
	default:
		return 0, fmt.Errorf("codegen: type %s is not yet codegen-supported", ast.TypeDisplayString(t))
	}
}
