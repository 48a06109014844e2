package jsast

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Generate prints n as JavaScript source. Strings are double quoted with
// only the characters that must be escaped escaped. Object literals with
// properties are printed one property per line; arrays, calls and
// declarations stay on one line.
func Generate(n *Node) string {
	var p printer
	p.node(n)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	level int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.write(strings.Repeat(indentUnit, p.level))
}

func (p *printer) list(items []*Node, sep string) {
	for i, item := range items {
		if i > 0 {
			p.write(sep)
		}
		p.node(item)
	}
}

func (p *printer) node(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindProgram:
		for i, stmt := range n.List {
			if i > 0 {
				p.write("\n")
			}
			p.node(stmt)
		}
	case KindVariableDeclaration:
		p.write(n.Text)
		p.write(" ")
		p.list(n.List, ", ")
		p.write(";")
	case KindVariableDeclarator:
		p.node(n.Key)
		if n.Value != nil {
			p.write(" = ")
			p.node(n.Value)
		}
	case KindIdentifier, KindNumericLiteral, KindBooleanLiteral, KindOpaque:
		p.write(n.Text)
	case KindStringLiteral:
		p.write(Quote(n.Text))
	case KindNullLiteral:
		p.write("null")
	case KindArrayExpression:
		p.write("[")
		p.list(n.List, ", ")
		p.write("]")
	case KindObjectExpression:
		p.object(n)
	case KindObjectProperty:
		if n.Computed {
			p.write("[")
			p.node(n.Key)
			p.write("]")
		} else {
			p.node(n.Key)
		}
		p.write(": ")
		p.node(n.Value)
	case KindCallExpression:
		p.node(n.Callee)
		p.write("(")
		p.list(n.List, ", ")
		p.write(")")
	case KindMemberExpression:
		p.node(n.Object)
		if n.Computed {
			p.write("[")
			p.node(n.Property)
			p.write("]")
		} else {
			p.write(".")
			p.node(n.Property)
		}
	case KindSpreadElement:
		p.write("...")
		p.node(n.Value)
	default:
		panic(fmt.Sprintf("jsast: cannot generate %s", n.Kind))
	}
}

func (p *printer) object(n *Node) {
	if len(n.List) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.level++
	for i, prop := range n.List {
		p.newline()
		p.node(prop)
		if i < len(n.List)-1 {
			p.write(",")
		}
	}
	p.level--
	p.newline()
	p.write("}")
}

// Quote returns s as a double-quoted JavaScript string literal, escaping
// only backslashes, double quotes, control characters and line separators.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			// \0 followed by a digit would read as an octal escape.
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				sb.WriteString(`\x00`)
			} else {
				sb.WriteString(`\0`)
			}
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
