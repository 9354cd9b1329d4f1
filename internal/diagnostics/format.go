package diagnostics

import (
	"fmt"
	"strings"

	"github.com/theta-lang/thetac/internal/ast"
)

// colorCodes assigns an ANSI color per diagnostic kind for the header.
var colorCodes = map[Kind]string{
	SyntaxError:              "\033[1;31m", // red
	ParseError:                "\033[1;31m",
	LinkageError:              "\033[1;35m", // magenta
	TypeError:                 "\033[1;33m", // yellow
	IllegalReassignmentError:  "\033[1;33m",
	ReferenceError:            "\033[1;35m",
	IntegrityError:            "\033[1;41m", // red background: internal bug
}

const colorReset = "\033[0m"

// Format renders a single diagnostic: a color-coded
// kind header, the message, the offending source line with a caret under
// the offending column, and the immediately preceding/following lines for
// context.
func Format(d Diagnostic, source string, color bool) string {
	var sb strings.Builder

	header := d.Kind.String()
	if color {
		sb.WriteString(colorCodes[d.Kind])
	}
	sb.WriteString(header)
	if color {
		sb.WriteString(colorReset)
	}
	pos := d.Pos()
	if pos.Line > 0 {
		fmt.Fprintf(&sb, " at %d:%d", pos.Line, pos.Column)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if d.TypeA != nil || d.TypeB != nil {
		fmt.Fprintf(&sb, " (expected %s, got %s)", ast.TypeDisplayString(d.TypeA), ast.TypeDisplayString(d.TypeB))
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&sb, " — did you mean %q?", d.Suggestion)
	}

	if pos.Line > 0 && source != "" {
		sb.WriteString("\n")
		sb.WriteString(contextLines(source, pos.Line, pos.Column, color))
	}

	return sb.String()
}

// contextLines renders the offending line plus one line of context before
// and after it, with a caret pointing at the offending column.
func contextLines(source string, line, column int, color bool) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	start := line - 1
	if start < 1 {
		start = 1
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		prefix := fmt.Sprintf("%4d | ", i)
		sb.WriteString(prefix)
		sb.WriteString(lines[i-1])
		sb.WriteString("\n")
		if i == line {
			sb.WriteString(strings.Repeat(" ", len(prefix)+maxInt(column-1, 0)))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString(colorReset)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatAll renders every diagnostic in a Sink, separated by blank lines.
func FormatAll(diags []Diagnostic, source string, color bool) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Format(d, source, color))
		sb.WriteString("\n")
	}
	return sb.String()
}
