package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node as an indented tree of kinds and payloads, one node
// per line. Print renders re-parseable source; Dump is the diagnostic form
// the CLI's AST dump emits, where seeing the node structure matters more
// than syntax.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(n.Kind().String())

	switch v := n.(type) {
	case *Link:
		fmt.Fprintf(sb, " %s", v.CapsuleName)
	case *Capsule:
		fmt.Fprintf(sb, " %s", v.Name)
	case *Identifier:
		fmt.Fprintf(sb, " %s", v.Name)
		if v.Type != nil {
			fmt.Fprintf(sb, "<%s>", TypeDisplayString(v.Type))
		}
	case *BinaryOperation:
		fmt.Fprintf(sb, " %s", v.Op)
	case *UnaryOperation:
		fmt.Fprintf(sb, " %s", v.Op)
	case *NumberLiteral:
		fmt.Fprintf(sb, " %s", v.Value)
	case *StringLiteral:
		fmt.Fprintf(sb, " %q", v.Value)
	case *BooleanLiteral:
		fmt.Fprintf(sb, " %s", v.Value)
	case *Symbol:
		fmt.Fprintf(sb, " :%s", v.Name)
	case *Enum:
		fmt.Fprintf(sb, " %s { :%s }", v.Name, strings.Join(v.Symbols, ", :"))
	case *StructDefinition:
		fmt.Fprintf(sb, " %s", v.Name)
	case *StructDeclaration:
		fmt.Fprintf(sb, " @%s", v.TypeName)
	case *TypeDeclaration:
		fmt.Fprintf(sb, " %s", TypeDisplayString(v))
	}
	if rt := n.ResolvedType(); rt != nil {
		fmt.Fprintf(sb, " : %s", TypeDisplayString(rt))
	}
	sb.WriteString("\n")

	for _, child := range children(n) {
		dump(sb, child, depth+1)
	}
}

// children returns a node's structural children in source order,
// including an Assignment's left-hand Identifier and a function's
// parameter list.
func children(n Node) []Node {
	switch v := n.(type) {
	case *Source:
		out := make([]Node, 0, len(v.Links)+1)
		for _, l := range v.Links {
			out = append(out, l)
		}
		if v.Value != nil {
			out = append(out, v.Value)
		}
		return out
	case *Capsule:
		return v.Elements
	case *Block:
		return v.Statements
	case *AstNodeList:
		return v.Elements
	case *Assignment:
		return []Node{v.Left, v.Right}
	case *FunctionDeclaration:
		return []Node{v.Params, v.Definition}
	case *FunctionInvocation:
		return []Node{v.Callee, v.Args}
	case *Return:
		return []Node{v.Value}
	case *ControlFlow:
		var out []Node
		for _, br := range v.Branches {
			if br.Condition != nil {
				out = append(out, br.Condition)
			}
			out = append(out, br.Body)
		}
		return out
	case *BinaryOperation:
		return []Node{v.Left, v.Right}
	case *UnaryOperation:
		return []Node{v.Value}
	case *List:
		return v.Elements
	case *Dictionary:
		out := make([]Node, len(v.Elements))
		for i, t := range v.Elements {
			out[i] = t
		}
		return out
	case *Tuple:
		return v.Elements
	case *StructDeclaration:
		return []Node{v.Fields}
	}
	return nil
}
