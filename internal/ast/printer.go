package ast

import (
	"fmt"
	"strings"
)

// Print renders a node back into Theta source syntax: lexing and parsing the
// output of Print must reproduce a structurally equal tree.
func Print(n Node) string {
	var sb strings.Builder
	print(&sb, n)
	return sb.String()
}

func print(sb *strings.Builder, n Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *Source:
		for _, l := range v.Links {
			print(sb, l)
			sb.WriteString("\n")
		}
		print(sb, v.Value)
	case *Link:
		fmt.Fprintf(sb, "link %s", v.CapsuleName)
	case *Capsule:
		fmt.Fprintf(sb, "capsule %s {\n", v.Name)
		for _, e := range v.Elements {
			print(sb, e)
			sb.WriteString("\n")
		}
		sb.WriteString("}")
	case *Block:
		sb.WriteString("{ ")
		for i, s := range v.Statements {
			if i > 0 {
				sb.WriteString(" ")
			}
			print(sb, s)
		}
		sb.WriteString(" }")
	case *AstNodeList:
		sb.WriteString("(")
		printList(sb, v.Elements)
		sb.WriteString(")")
	case *Assignment:
		print(sb, v.Left)
		sb.WriteString(" = ")
		print(sb, v.Right)
	case *Identifier:
		sb.WriteString(v.Name)
		if v.Type != nil {
			fmt.Fprintf(sb, "<%s>", TypeDisplayString(v.Type))
		}
	case *TypeDeclaration:
		sb.WriteString(TypeDisplayString(v))
	case *FunctionDeclaration:
		sb.WriteString("(")
		printList(sb, v.Params.Elements)
		sb.WriteString(") -> ")
		print(sb, v.Definition)
	case *FunctionInvocation:
		print(sb, v.Callee)
		sb.WriteString("(")
		printList(sb, v.Args.Elements)
		sb.WriteString(")")
	case *Return:
		sb.WriteString("return ")
		print(sb, v.Value)
	case *ControlFlow:
		for i, br := range v.Branches {
			switch {
			case i == 0:
				sb.WriteString("if ")
			case br.Condition != nil:
				sb.WriteString(" else if ")
			default:
				sb.WriteString(" else ")
			}
			if br.Condition != nil {
				print(sb, br.Condition)
				sb.WriteString(" ")
			}
			print(sb, br.Body)
		}
	case *BinaryOperation:
		sb.WriteString("(")
		print(sb, v.Left)
		fmt.Fprintf(sb, " %s ", v.Op)
		print(sb, v.Right)
		sb.WriteString(")")
	case *UnaryOperation:
		sb.WriteString(v.Op)
		print(sb, v.Value)
	case *NumberLiteral:
		sb.WriteString(v.Value)
	case *StringLiteral:
		sb.WriteString(v.Value)
	case *BooleanLiteral:
		sb.WriteString(v.Value)
	case *Symbol:
		fmt.Fprintf(sb, ":%s", v.Name)
	case *List:
		sb.WriteString("[")
		printList(sb, v.Elements)
		sb.WriteString("]")
	case *Dictionary:
		sb.WriteString("{ ")
		for i, t := range v.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			if len(t.Elements) == 2 {
				// A (Symbol key, value) entry is written back as `:key: value`.
				print(sb, t.Elements[0])
				sb.WriteString(": ")
				print(sb, t.Elements[1])
			} else {
				print(sb, t)
			}
		}
		sb.WriteString(" }")
	case *Tuple:
		sb.WriteString("{ ")
		printList(sb, v.Elements)
		sb.WriteString(" }")
	case *Enum:
		fmt.Fprintf(sb, "enum %s { ", v.Name)
		for i, s := range v.Symbols {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, ":%s", s)
		}
		sb.WriteString(" }")
	case *StructDefinition:
		fmt.Fprintf(sb, "struct %s { ", v.Name)
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			print(sb, f)
		}
		sb.WriteString(" }")
	case *StructDeclaration:
		fmt.Fprintf(sb, "@%s ", v.TypeName)
		print(sb, v.Fields)
	default:
		fmt.Fprintf(sb, "<?%T>", v)
	}
}

func printList(sb *strings.Builder, nodes []Node) {
	for i, e := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		print(sb, e)
	}
}
