package codegen

import (
	"bytes"

	"github.com/theta-lang/thetac/internal/ast"
	"github.com/theta-lang/thetac/internal/diagnostics"
	"github.com/theta-lang/thetac/internal/lexer"
)

// funcGen emits the instruction stream of a single function body,
// tracking the local-index discipline: parameters get indices
// 0..arity-1 up front, and every Assignment encountered in source order
// claims the next index and records it in locals.
type funcGen struct {
	m      *Module
	sink   *diagnostics.Sink
	locals map[string]int
	extra  []ValType
	next   int
	code   bytes.Buffer
	failed bool
}

func newFuncGen(m *Module, sink *diagnostics.Sink, params []*ast.Identifier) (*funcGen, []ValType) {
	fg := &funcGen{m: m, sink: sink, locals: make(map[string]int)}
	paramTypes := make([]ValType, len(params))
	for i, p := range params {
		fg.locals[p.Name] = i
		vt, err := valType(p.Type)
		if err != nil {
			fg.fatal(p.Pos(), err.Error())
			continue
		}
		paramTypes[i] = vt
	}
	fg.next = len(params)
	return fg, paramTypes
}

func (fg *funcGen) fatal(pos lexer.Position, msg string) {
	tok := lexer.Token{Pos: pos}
	fg.sink.Add(diagnostics.IntegrityError, msg, &tok)
	fg.failed = true
}

func (fg *funcGen) bindLocal(name string, t ValType) int {
	idx := fg.next
	fg.next++
	fg.locals[name] = idx
	fg.extra = append(fg.extra, t)
	return idx
}

func (fg *funcGen) op(b byte)            { fg.code.WriteByte(b) }
func (fg *funcGen) u32(v uint64)         { writeULEB128(&fg.code, v) }
func (fg *funcGen) s64(v int64)          { writeSLEB128(&fg.code, v) }
func (fg *funcGen) localGet(idx int)     { fg.op(opLocalGet); fg.u32(uint64(idx)) }
func (fg *funcGen) localSet(idx int)     { fg.op(opLocalSet); fg.u32(uint64(idx)) }

// emitBody generates the whole statement list of a Block, keeping the
// final statement's value on the stack as the function's (or branch's)
// result when keepLast is true.
func (fg *funcGen) emitBody(stmts []ast.Node, keepLast bool) {
	for i, s := range stmts {
		fg.emitStatement(s, keepLast && i == len(stmts)-1)
	}
}

func endsInReturn(b *ast.Block) bool {
	if b == nil || len(b.Statements) == 0 {
		return false
	}
	_, ok := b.Statements[len(b.Statements)-1].(*ast.Return)
	return ok
}

// controlFlowYieldsValue reports whether any branch of cf falls through
// without an explicit Return, meaning the ControlFlow as a whole is used
// as a value-producing expression rather than a void control statement.
func controlFlowYieldsValue(cf *ast.ControlFlow) bool {
	for _, br := range cf.Branches {
		if !endsInReturn(br.Body) {
			return true
		}
	}
	return false
}

func (fg *funcGen) emitStatement(n ast.Node, keepValue bool) {
	switch v := n.(type) {
	case *ast.Assignment:
		if _, isFn := v.Right.(*ast.FunctionDeclaration); isFn {
			fg.fatal(v.Pos(), "lambda right-hand side of a local assignment is not supported by the code generator")
			return
		}
		fg.emitExpr(v.Right)
		vt, err := valType(v.Right.ResolvedType())
		if err != nil {
			fg.fatal(v.Pos(), err.Error())
			return
		}
		idx := fg.bindLocal(v.Left.Name, vt)
		v.Left.SetLocalIndex(idx)
		v.SetLocalIndex(idx)
		fg.localSet(idx)
	case *ast.Return:
		fg.emitExpr(v.Value)
		fg.op(opReturn)
	case *ast.ControlFlow:
		fg.emitControlFlow(v, keepValue)
	case *ast.Block:
		fg.emitBody(v.Statements, keepValue)
	default:
		fg.emitExpr(v)
		if !keepValue {
			fg.op(opDrop)
		}
	}
}

// emitControlFlow lowers a ControlFlow to nested Wasm if/else blocks.
// keepValue controls whether a
// value-yielding ControlFlow's result is left on the stack (it is the
// tail of its enclosing body) or dropped.
func (fg *funcGen) emitControlFlow(cf *ast.ControlFlow, keepValue bool) {
	yields := controlFlowYieldsValue(cf)
	bt := blockTypeVoid
	if yields {
		if vt, err := valType(cf.ResolvedType()); err == nil {
			bt = blockResultType(vt)
		} else {
			fg.fatal(cf.Pos(), err.Error())
		}
	}
	fg.emitBranches(cf.Branches, 0, bt, yields)
	if yields && !keepValue {
		fg.op(opDrop)
	}
	if !yields && keepValue {
		// Every branch returned, so the void if/else never falls through
		// here — but the validator cannot see that, and the function still
		// owes a result at its implicit end. An explicit unreachable keeps
		// the body well-typed on this dead path.
		fg.op(opUnreachable)
	}
}

func (fg *funcGen) emitBranches(branches []ast.Branch, idx int, bt byte, yields bool) {
	if idx >= len(branches) {
		return
	}
	br := branches[idx]
	if br.Condition == nil {
		fg.emitBody(br.Body.Statements, yields && !endsInReturn(br.Body))
		return
	}
	fg.emitExpr(br.Condition)
	fg.op(opIf)
	fg.op(bt)
	fg.emitBody(br.Body.Statements, yields && !endsInReturn(br.Body))
	if idx+1 < len(branches) {
		fg.op(opElse)
		fg.emitBranches(branches, idx+1, bt, yields)
	}
	fg.op(opEnd)
}

// emitExpr emits the instructions that push n's single value onto the
// stack.
func (fg *funcGen) emitExpr(n ast.Node) {
	switch v := n.(type) {
	case *ast.NumberLiteral:
		val, err := parseThetaNumber(v.Value)
		if err != nil {
			fg.fatal(v.Pos(), err.Error())
			return
		}
		fg.op(opI64Const)
		fg.s64(val)
	case *ast.BooleanLiteral:
		fg.op(opI32Const)
		if v.Value == "true" {
			fg.s64(1)
		} else {
			fg.s64(0)
		}
	case *ast.Identifier:
		idx, ok := fg.locals[v.Name]
		if !ok {
			fg.fatal(v.Pos(), "codegen: unbound identifier "+v.Name+" reached code generation")
			return
		}
		v.SetLocalIndex(idx)
		fg.localGet(idx)
	case *ast.BinaryOperation:
		fg.emitBinaryOperation(v)
	case *ast.UnaryOperation:
		fg.emitUnaryOperation(v)
	case *ast.FunctionInvocation:
		fg.emitFunctionInvocation(v)
	case *ast.ControlFlow:
		fg.emitControlFlow(v, true)
	default:
		fg.fatal(n.Pos(), "codegen: unsupported expression node reached the generator")
	}
}

func (fg *funcGen) emitBinaryOperation(v *ast.BinaryOperation) {
	operand := v.Left.ResolvedType()
	fg.emitExpr(v.Left)
	fg.emitExpr(v.Right)

	if v.Op == "**" {
		idx, ok := fg.m.FuncIndex(powFuncName)
		if !ok {
			fg.fatal(v.Pos(), "codegen: Theta.Math.pow was not registered into the module")
			return
		}
		fg.op(opCall)
		fg.u32(uint64(idx))
		return
	}

	isString := operand != nil && operand.Name == ast.TypeString
	isBoolean := operand != nil && operand.Name == ast.TypeBoolean

	switch v.Op {
	case "+":
		if isString {
			fg.op(opGCPrefix)
			fg.u32(subStringConcat)
		} else {
			fg.op(opI64Add)
		}
	case "-":
		fg.op(opI64Sub)
	case "*":
		fg.op(opI64Mul)
	case "/":
		fg.op(opI64DivS)
	case "==":
		switch {
		case isString:
			fg.op(opGCPrefix)
			fg.u32(subStringEq)
		case isBoolean:
			fg.op(opI32Eq)
		default:
			fg.op(opI64Eq)
		}
	case "!=":
		if isBoolean {
			fg.op(opI32Ne)
		} else {
			fg.op(opI64Ne)
		}
	case "<":
		fg.op(opI64LtS)
	case ">":
		fg.op(opI64GtS)
	case "<=":
		fg.op(opI64LeS)
	case ">=":
		fg.op(opI64GeS)
	case "&&":
		fg.op(opI32And)
	case "||":
		fg.op(opI32Or)
	default:
		fg.fatal(v.Pos(), "codegen: unsupported operator "+v.Op)
	}
}

// emitUnaryOperation keeps two historical quirks verbatim: `!` emits
// i64.eqz even though a Boolean operand is i32-valued, and `-x` lowers to
// `x * -1` rather than a dedicated negate instruction.
func (fg *funcGen) emitUnaryOperation(v *ast.UnaryOperation) {
	fg.emitExpr(v.Value)
	switch v.Op {
	case "!":
		fg.op(opI64Eqz)
	case "-":
		fg.op(opI64Const)
		fg.s64(-1)
		fg.op(opI64Mul)
	default:
		fg.fatal(v.Pos(), "codegen: unsupported unary operator "+v.Op)
	}
}

func (fg *funcGen) emitFunctionInvocation(v *ast.FunctionInvocation) {
	callee, ok := v.Callee.(*ast.Identifier)
	if !ok {
		fg.fatal(v.Pos(), "codegen: call target must be a direct function reference")
		return
	}
	argTypes := make([]*ast.TypeDeclaration, len(v.Args.Elements))
	for i, a := range v.Args.Elements {
		argTypes[i] = a.ResolvedType()
	}
	name := mangle(callee.Name, argTypes)
	idx, ok := fg.m.FuncIndex(name)
	if !ok {
		fg.fatal(v.Pos(), "codegen: no function matches the mangled name "+name)
		return
	}
	for _, a := range v.Args.Elements {
		fg.emitExpr(a)
	}
	fg.op(opCall)
	fg.u32(uint64(idx))
}
