package ast

import (
	"strings"

	"github.com/theta-lang/thetac/internal/lexer"
)

// TypeName is the closed set of type-expression head names.
type TypeName string

const (
	TypeNumber   TypeName = "Number"
	TypeString   TypeName = "String"
	TypeBoolean  TypeName = "Boolean"
	TypeSymbol   TypeName = "Symbol"
	TypeTuple    TypeName = "Tuple"
	TypeList     TypeName = "List"
	TypeDict     TypeName = "Dict"
	TypeFunction TypeName = "Function"
	TypeVariadic TypeName = "Variadic"
	TypeCapsule  TypeName = "Capsule"
	TypeStruct   TypeName = "Struct"
)

// TypeDeclaration is itself an AST node: its Name is one of the
// TypeName constants, with optional child type expressions encoding type
// parameters — Value for a unary parameter (List<T>), Left/Right for a
// pair (Tuple<A,B>, Function<Arg,Ret>), or Elements for an arbitrary-arity
// list (Variadic<T1,...,Tn>).
type TypeDeclaration struct {
	base
	Name       TypeName
	StructName string // only meaningful when Name == TypeStruct
	Value      *TypeDeclaration
	Left       *TypeDeclaration
	Right      *TypeDeclaration
	Elements   []*TypeDeclaration
}

func (n *TypeDeclaration) Kind() Kind { return KindTypeDeclaration }

func newType(name TypeName) *TypeDeclaration {
	return &TypeDeclaration{base: newBase(lexer.Position{}), Name: name}
}

func NewNumberType() *TypeDeclaration  { return newType(TypeNumber) }
func NewStringType() *TypeDeclaration  { return newType(TypeString) }
func NewBooleanType() *TypeDeclaration { return newType(TypeBoolean) }
func NewSymbolType() *TypeDeclaration  { return newType(TypeSymbol) }
func NewCapsuleType() *TypeDeclaration { return newType(TypeCapsule) }

func NewListType(elem *TypeDeclaration) *TypeDeclaration {
	t := newType(TypeList)
	t.Value = elem
	return t
}

func NewTupleType(left, right *TypeDeclaration) *TypeDeclaration {
	t := newType(TypeTuple)
	t.Left, t.Right = left, right
	return t
}

func NewDictType(key, value *TypeDeclaration) *TypeDeclaration {
	t := newType(TypeDict)
	t.Left, t.Right = key, value
	return t
}

func NewFunctionType(arg, ret *TypeDeclaration) *TypeDeclaration {
	t := newType(TypeFunction)
	t.Left, t.Right = arg, ret
	return t
}

func NewStructType(name string) *TypeDeclaration {
	t := newType(TypeStruct)
	t.StructName = name
	return t
}

// NewVariadicType builds a Variadic<T1,...,Tn> type with duplicate
// alternatives removed, preserving first-seen order.
func NewVariadicType(alts ...*TypeDeclaration) *TypeDeclaration {
	t := newType(TypeVariadic)
	var deduped []*TypeDeclaration
	for _, alt := range alts {
		dup := false
		for _, existing := range deduped {
			if TypesEqual(existing, alt) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, alt)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	t.Elements = deduped
	return t
}

// TypesEqual implements structural type equality: two
// TypeDeclarations are equal when both are nil, or their names match and
// their structural children recursively match. Two Variadic types are
// equal only when their alternatives match element by element in order;
// the looser Variadic satisfaction rule is VariadicSatisfies, not this
// function.
func TypesEqual(a, b *TypeDeclaration) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Name != b.Name {
		return false
	}
	switch a.Name {
	case TypeList:
		return TypesEqual(a.Value, b.Value)
	case TypeTuple, TypeDict, TypeFunction:
		return TypesEqual(a.Left, b.Left) && TypesEqual(a.Right, b.Right)
	case TypeStruct:
		return a.StructName == b.StructName
	case TypeVariadic:
		return variadicElementsEqual(a.Elements, b.Elements)
	default:
		return true
	}
}

func variadicElementsEqual(a, b []*TypeDeclaration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !TypesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// VariadicSatisfies reports whether a value of type `have` may be used
// where `want` is expected, accounting for the Variadic satisfaction
// rule: a Variadic `have` is acceptable when every element type it
// lists is present among `want`'s alternatives (at least one declared
// alternative, and no extras).
func VariadicSatisfies(want, have *TypeDeclaration) bool {
	if TypesEqual(want, have) {
		return true
	}
	if have != nil && have.Name == TypeVariadic {
		wantAlts := alternativesOf(want)
		for _, elem := range have.Elements {
			if !containsType(wantAlts, elem) {
				return false
			}
		}
		return len(have.Elements) > 0
	}
	if want != nil && want.Name == TypeVariadic {
		return containsType(want.Elements, have)
	}
	return false
}

func alternativesOf(t *TypeDeclaration) []*TypeDeclaration {
	if t == nil {
		return nil
	}
	if t.Name == TypeVariadic {
		return t.Elements
	}
	return []*TypeDeclaration{t}
}

func containsType(set []*TypeDeclaration, t *TypeDeclaration) bool {
	for _, s := range set {
		if TypesEqual(s, t) {
			return true
		}
	}
	return false
}

// TypeDisplayString renders a TypeDeclaration as Theta source-level type
// syntax, e.g. "Function<Number,Number>". Used by diagnostics, Dump and
// Print; mangled names use TypeMangle instead, which omits punctuation.
func TypeDisplayString(t *TypeDeclaration) string {
	if t == nil {
		return "<unresolved>"
	}
	switch t.Name {
	case TypeList:
		return "List<" + TypeDisplayString(t.Value) + ">"
	case TypeTuple:
		return "Tuple<" + TypeDisplayString(t.Left) + "," + TypeDisplayString(t.Right) + ">"
	case TypeDict:
		return "Dict<" + TypeDisplayString(t.Left) + "," + TypeDisplayString(t.Right) + ">"
	case TypeFunction:
		if t.Left == nil {
			// Zero parameters: the source form lists only the return type.
			return "Function<" + TypeDisplayString(t.Right) + ">"
		}
		return "Function<" + TypeDisplayString(t.Left) + "," + TypeDisplayString(t.Right) + ">"
	case TypeStruct:
		return t.StructName
	case TypeVariadic:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = TypeDisplayString(e)
		}
		return "Variadic<" + strings.Join(parts, ",") + ">"
	default:
		return string(t.Name)
	}
}

// TypeMangle renders a TypeDeclaration as the punctuation-free fragment
// used in a mangled function name.
func TypeMangle(t *TypeDeclaration) string {
	if t == nil {
		return "Unknown"
	}
	switch t.Name {
	case TypeList:
		return "ListOf" + TypeMangle(t.Value)
	case TypeTuple:
		return "TupleOf" + TypeMangle(t.Left) + TypeMangle(t.Right)
	case TypeDict:
		return "DictOf" + TypeMangle(t.Left) + TypeMangle(t.Right)
	case TypeFunction:
		return "FunctionOf" + TypeMangle(t.Left) + TypeMangle(t.Right)
	case TypeStruct:
		return t.StructName
	default:
		return string(t.Name)
	}
}
