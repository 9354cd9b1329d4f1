// Package ast defines the Theta abstract syntax tree: a closed set of
// node kinds produced by the parser, rewritten in place by the optimizer,
// annotated with resolved types by the type checker, and finally consumed
// by the code generator.
package ast

import (
	"fmt"
	"sync/atomic"

	"github.com/theta-lang/thetac/internal/lexer"
)

// Kind tags the concrete Go type of a Node so traversals that need to
// branch on node shape (the optimizer, the type checker) can do so with an
// exhaustive type switch instead of a virtual dispatch table.
type Kind int

const (
	KindSource Kind = iota
	KindLink
	KindCapsule
	KindBlock
	KindAstNodeList
	KindAssignment
	KindIdentifier
	KindTypeDeclaration
	KindFunctionDeclaration
	KindFunctionInvocation
	KindReturn
	KindControlFlow
	KindBinaryOperation
	KindUnaryOperation
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindSymbol
	KindList
	KindDictionary
	KindTuple
	KindEnum
	KindStructDefinition
	KindStructDeclaration
)

var kindNames = [...]string{
	"Source", "Link", "Capsule", "Block", "AstNodeList", "Assignment",
	"Identifier", "TypeDeclaration", "FunctionDeclaration", "FunctionInvocation",
	"Return", "ControlFlow", "BinaryOperation", "UnaryOperation", "NumberLiteral",
	"StringLiteral", "BooleanLiteral", "Symbol", "List", "Dictionary", "Tuple",
	"Enum", "StructDefinition", "StructDeclaration",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var nextID int64

func allocID() int {
	return int(atomic.AddInt64(&nextID, 1))
}

// Node is implemented by every AST node kind. It carries the identity and
// mutable annotation slots common to all nodes: a unique
// id, an optional resolved type, a non-owning parent back-reference, and a
// mapped local index used only by the code generator.
type Node interface {
	ID() int
	Kind() Kind
	Pos() lexer.Position
	ResolvedType() *TypeDeclaration
	SetResolvedType(*TypeDeclaration)
	Parent() Node
	SetParent(Node)
	LocalIndex() int
	SetLocalIndex(int)
}

// base is embedded by every concrete node type and supplies the Node
// interface's identity/annotation machinery uniformly.
type base struct {
	id           int
	pos          lexer.Position
	resolvedType *TypeDeclaration
	parent       Node
	localIndex   int
}

func newBase(pos lexer.Position) base {
	return base{id: allocID(), pos: pos, localIndex: -1}
}

func (b *base) ID() int                             { return b.id }
func (b *base) Pos() lexer.Position                 { return b.pos }
func (b *base) ResolvedType() *TypeDeclaration       { return b.resolvedType }
func (b *base) SetResolvedType(t *TypeDeclaration)   { b.resolvedType = t }
func (b *base) Parent() Node                         { return b.parent }
func (b *base) SetParent(p Node)                     { b.parent = p }
func (b *base) LocalIndex() int                      { return b.localIndex }
func (b *base) SetLocalIndex(i int)                  { b.localIndex = i }

// Source is the root of every parsed compilation unit: zero or more
// resolved Link subtrees plus one top-level expression.
type Source struct {
	base
	Links []*Link
	Value Node
}

func NewSource(pos lexer.Position) *Source { return &Source{base: newBase(pos)} }
func (n *Source) Kind() Kind               { return KindSource }

// Link names another capsule to import; Resolved is filled in by the
// capsule resolver. Resolved is nil when resolution failed.
type Link struct {
	base
	CapsuleName string
	Resolved    *Source
}

func NewLink(pos lexer.Position, name string) *Link { return &Link{base: newBase(pos), CapsuleName: name} }
func (n *Link) Kind() Kind                          { return KindLink }

// Capsule is a named namespace bundling functions, constants, structs and
// enums.
type Capsule struct {
	base
	Name     string
	Elements []Node
}

func NewCapsule(pos lexer.Position, name string) *Capsule {
	return &Capsule{base: newBase(pos), Name: name}
}
func (n *Capsule) Kind() Kind { return KindCapsule }

// Block owns its own lexical scope and contains an
// ordered list of Return statements (and, during parsing, other
// statements that desugar to an implicit final return).
type Block struct {
	base
	Statements []Node
}

func NewBlock(pos lexer.Position) *Block { return &Block{base: newBase(pos)} }
func (n *Block) Kind() Kind              { return KindBlock }

// AstNodeList is an ordered, homogeneous-in-role list of child nodes: a
// parenthesized expression list, or a function's parameter list.
type AstNodeList struct {
	base
	Elements []Node
}

func NewAstNodeList(pos lexer.Position) *AstNodeList { return &AstNodeList{base: newBase(pos)} }
func (n *AstNodeList) Kind() Kind                    { return KindAstNodeList }

// Assignment binds the value of Right to the Identifier Left, whose Type
// field holds the declared TypeDeclaration. For an unannotated assignment
// Type is nil until the type checker fills in the inferred type.
type Assignment struct {
	base
	Left  *Identifier
	Right Node
}

func NewAssignment(pos lexer.Position, left *Identifier, right Node) *Assignment {
	return &Assignment{base: newBase(pos), Left: left, Right: right}
}
func (n *Assignment) Kind() Kind { return KindAssignment }

// Identifier is a name reference; when it appears on the left of an
// Assignment or as a function parameter, Type holds its declared type.
type Identifier struct {
	base
	Name string
	Type *TypeDeclaration
}

func NewIdentifier(pos lexer.Position, name string) *Identifier {
	return &Identifier{base: newBase(pos), Name: name}
}
func (n *Identifier) Kind() Kind { return KindIdentifier }

// FunctionDeclaration stores its parameter list (an AstNodeList of
// Identifier nodes whose Type holds the parameter type) and a Block
// definition.
type FunctionDeclaration struct {
	base
	Params     *AstNodeList
	Definition *Block
}

func NewFunctionDeclaration(pos lexer.Position, params *AstNodeList, def *Block) *FunctionDeclaration {
	return &FunctionDeclaration{base: newBase(pos), Params: params, Definition: def}
}
func (n *FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// FunctionInvocation calls Callee (normally an Identifier) with Args.
type FunctionInvocation struct {
	base
	Callee Node
	Args   *AstNodeList
}

func NewFunctionInvocation(pos lexer.Position, callee Node, args *AstNodeList) *FunctionInvocation {
	return &FunctionInvocation{base: newBase(pos), Callee: callee, Args: args}
}
func (n *FunctionInvocation) Kind() Kind { return KindFunctionInvocation }

// Return wraps the expression being returned from a block.
type Return struct {
	base
	Value Node
}

func NewReturn(pos lexer.Position, value Node) *Return { return &Return{base: newBase(pos), Value: value} }
func (n *Return) Kind() Kind                           { return KindReturn }

// Branch is one (condition, body) pair of a ControlFlow node. The final
// branch may have a nil Condition, meaning it is the else clause.
type Branch struct {
	Condition Node
	Body      *Block
}

// ControlFlow stores an ordered sequence of branches, with an optional
// final else-only branch.
type ControlFlow struct {
	base
	Branches []Branch
}

func NewControlFlow(pos lexer.Position) *ControlFlow { return &ControlFlow{base: newBase(pos)} }
func (n *ControlFlow) Kind() Kind                    { return KindControlFlow }

// BinaryOperation applies Op (an operator lexeme) to Left and Right.
type BinaryOperation struct {
	base
	Op    string
	Left  Node
	Right Node
}

func NewBinaryOperation(pos lexer.Position, op string, left, right Node) *BinaryOperation {
	return &BinaryOperation{base: newBase(pos), Op: op, Left: left, Right: right}
}
func (n *BinaryOperation) Kind() Kind { return KindBinaryOperation }

// UnaryOperation applies Op to a single Value.
type UnaryOperation struct {
	base
	Op    string
	Value Node
}

func NewUnaryOperation(pos lexer.Position, op string, value Node) *UnaryOperation {
	return &UnaryOperation{base: newBase(pos), Op: op, Value: value}
}
func (n *UnaryOperation) Kind() Kind { return KindUnaryOperation }

// NumberLiteral, StringLiteral and BooleanLiteral store their source text
// verbatim.

type NumberLiteral struct {
	base
	Value string
}

func NewNumberLiteral(pos lexer.Position, value string) *NumberLiteral {
	return &NumberLiteral{base: newBase(pos), Value: value}
}
func (n *NumberLiteral) Kind() Kind { return KindNumberLiteral }

type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(pos lexer.Position, value string) *StringLiteral {
	return &StringLiteral{base: newBase(pos), Value: value}
}
func (n *StringLiteral) Kind() Kind { return KindStringLiteral }

type BooleanLiteral struct {
	base
	Value string
}

func NewBooleanLiteral(pos lexer.Position, value string) *BooleanLiteral {
	return &BooleanLiteral{base: newBase(pos), Value: value}
}
func (n *BooleanLiteral) Kind() Kind { return KindBooleanLiteral }

// Symbol is an interned identifier literal prefixed by ':' (enum values,
// dictionary keys).
type Symbol struct {
	base
	Name string // without the leading ':'
}

func NewSymbol(pos lexer.Position, name string) *Symbol { return &Symbol{base: newBase(pos), Name: name} }
func (n *Symbol) Kind() Kind                            { return KindSymbol }

// List is a `[ ... ]` literal.
type List struct {
	base
	Elements []Node
}

func NewList(pos lexer.Position) *List { return &List{base: newBase(pos)} }
func (n *List) Kind() Kind             { return KindList }

// Dictionary is a `{ k: v, ... }` literal; each element is a Tuple whose
// Left is a Symbol key.
type Dictionary struct {
	base
	Elements []*Tuple
}

func NewDictionary(pos lexer.Position) *Dictionary { return &Dictionary{base: newBase(pos)} }
func (n *Dictionary) Kind() Kind                   { return KindDictionary }

// Tuple is a `{ a, b, ... }` literal, and also the key/value pair shape
// used inside a Dictionary.
type Tuple struct {
	base
	Elements []Node
}

func NewTuple(pos lexer.Position) *Tuple { return &Tuple{base: newBase(pos)} }
func (n *Tuple) Kind() Kind              { return KindTuple }

// Enum declares an ordered set of symbol names.
type Enum struct {
	base
	Name    string
	Symbols []string
}

func NewEnum(pos lexer.Position, name string) *Enum { return &Enum{base: newBase(pos), Name: name} }
func (n *Enum) Kind() Kind                          { return KindEnum }

// StructDefinition declares a named struct shape (field identifiers, each
// carrying its declared TypeDeclaration in Type).
type StructDefinition struct {
	base
	Name   string
	Fields []*Identifier
}

func NewStructDefinition(pos lexer.Position, name string) *StructDefinition {
	return &StructDefinition{base: newBase(pos), Name: name}
}
func (n *StructDefinition) Kind() Kind { return KindStructDefinition }

// StructDeclaration is a `@TypeName { ... }` struct literal.
type StructDeclaration struct {
	base
	TypeName string
	Fields   *Dictionary
}

func NewStructDeclaration(pos lexer.Position, typeName string, fields *Dictionary) *StructDeclaration {
	return &StructDeclaration{base: newBase(pos), TypeName: typeName, Fields: fields}
}
func (n *StructDeclaration) Kind() Kind { return KindStructDeclaration }
