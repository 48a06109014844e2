package jsast

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"gitlab.com/tozd/go/errors"
)

// Parse parses JavaScript source into a Program node. Top-level variable
// declarations are converted in full; every other statement is kept as an
// opaque node. Source with syntax errors yields a *SyntaxError.
func Parse(ctx context.Context, src []byte) (*Node, error) {
	root, err := parseTree(ctx, src)
	if err != nil {
		return nil, err
	}
	if root.HasError() {
		return nil, syntaxErrorAt(root)
	}

	c := converter{src: src}
	prog := &Node{Kind: KindProgram}
	for _, stmt := range namedChildren(root) {
		switch stmt.Type() {
		case "lexical_declaration", "variable_declaration":
			prog.List = append(prog.List, c.declaration(stmt))
		default:
			prog.List = append(prog.List, c.opaque(stmt))
		}
	}
	return prog, nil
}

// ParseExpression parses src as a single expression. It accepts exactly
// what Generate produces for a fragment.
func ParseExpression(ctx context.Context, src []byte) (*Node, error) {
	wrapped := make([]byte, 0, len(src)+2)
	wrapped = append(wrapped, '(')
	wrapped = append(wrapped, src...)
	wrapped = append(wrapped, ')')

	root, err := parseTree(ctx, wrapped)
	if err != nil {
		return nil, err
	}
	if root.HasError() {
		return nil, syntaxErrorAt(root)
	}
	stmts := namedChildren(root)
	if len(stmts) != 1 || stmts[0].Type() != "expression_statement" {
		return nil, errors.Errorf("expected a single expression, got %d statements", len(stmts))
	}
	inner := namedChildren(stmts[0])
	if len(inner) != 1 || inner[0].Type() != "parenthesized_expression" {
		return nil, errors.New("expected a single expression")
	}
	exprs := namedChildren(inner[0])
	if len(exprs) != 1 {
		return nil, errors.New("expected a single expression")
	}
	c := converter{src: wrapped}
	return c.expr(exprs[0]), nil
}

func parseTree(ctx context.Context, src []byte) (*sitter.Node, error) {
	if !utf8.Valid(src) {
		return nil, errors.New("source is not valid UTF-8")
	}
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Errorf("tree-sitter parse failed: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("tree-sitter returned nil root")
	}
	return root, nil
}

// namedChildren returns the named children of n, leaving out comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func hasChildOfType(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == typ {
			return true
		}
	}
	return false
}

type converter struct {
	src []byte
}

func (c converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c converter) opaque(n *sitter.Node) *Node {
	return &Node{Kind: KindOpaque, Text: c.textWithoutComments(n)}
}

// textWithoutComments returns the source of n with nested comments cut out.
// A comment that ends a line takes its leading blanks with it; one that sits
// between two tokens leaves a single space.
func (c converter) textWithoutComments(n *sitter.Node) string {
	var comments []*sitter.Node
	collectComments(n, &comments)
	if len(comments) == 0 {
		return c.text(n)
	}

	start, end := int(n.StartByte()), int(n.EndByte())
	var sb strings.Builder
	pos := start
	for _, cm := range comments {
		from, to := int(cm.StartByte()), int(cm.EndByte())
		if from < pos || to > end {
			continue
		}
		next := to
		for next < end && isBlank(c.src[next]) {
			next++
		}
		prev := c.src[pos:from]
		switch {
		case next == end || c.src[next] == '\n' || c.src[next] == '\r':
			sb.WriteString(strings.TrimRight(string(prev), " \t"))
			pos = next
		case from == start || isSpace(c.src[from-1]):
			sb.Write(prev)
			pos = next
		case next > to:
			sb.Write(prev)
			pos = to
		default:
			sb.Write(prev)
			sb.WriteByte(' ')
			pos = to
		}
	}
	sb.Write(c.src[pos:end])
	return sb.String()
}

func collectComments(n *sitter.Node, out *[]*sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "comment" {
			*out = append(*out, child)
			continue
		}
		collectComments(child, out)
	}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isSpace(b byte) bool { return isBlank(b) || b == '\n' || b == '\r' }

func (c converter) declaration(n *sitter.Node) *Node {
	decl := &Node{Kind: KindVariableDeclaration}
	if n.ChildCount() > 0 {
		decl.Text = n.Child(0).Type()
	}
	for _, child := range namedChildren(n) {
		if child.Type() != "variable_declarator" {
			continue
		}
		d := &Node{Kind: KindVariableDeclarator}
		if name := child.ChildByFieldName("name"); name != nil {
			if name.Type() == "identifier" {
				d.Key = Ident(c.text(name))
			} else {
				d.Key = c.opaque(name)
			}
		}
		if value := child.ChildByFieldName("value"); value != nil {
			d.Value = c.expr(value)
		}
		decl.List = append(decl.List, d)
	}
	return decl
}

func (c converter) expr(n *sitter.Node) *Node {
	switch n.Type() {
	case "identifier", "undefined", "property_identifier",
		"shorthand_property_identifier", "private_property_identifier":
		return Ident(c.text(n))
	case "string":
		return String(c.stringValue(n))
	case "number":
		return &Node{Kind: KindNumericLiteral, Text: c.text(n)}
	case "true", "false":
		return &Node{Kind: KindBooleanLiteral, Text: n.Type()}
	case "null":
		return &Node{Kind: KindNullLiteral}
	case "array":
		arr := Array()
		for _, el := range namedChildren(n) {
			arr.List = append(arr.List, c.expr(el))
		}
		return arr
	case "object":
		obj := Object()
		for _, member := range namedChildren(n) {
			obj.List = append(obj.List, c.member(member))
		}
		return obj
	case "call_expression":
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn == nil || args == nil || args.Type() != "arguments" || hasChildOfType(n, "optional_chain") {
			return c.opaque(n)
		}
		call := Call(c.expr(fn))
		for _, arg := range namedChildren(args) {
			call.List = append(call.List, c.expr(arg))
		}
		return call
	case "member_expression":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil || hasChildOfType(n, "optional_chain") {
			return c.opaque(n)
		}
		return Member(c.expr(obj), c.expr(prop))
	case "subscript_expression":
		obj := n.ChildByFieldName("object")
		index := n.ChildByFieldName("index")
		if obj == nil || index == nil || hasChildOfType(n, "optional_chain") {
			return c.opaque(n)
		}
		m := Member(c.expr(obj), c.expr(index))
		m.Computed = true
		return m
	case "spread_element":
		if inner := namedChildren(n); len(inner) == 1 {
			return &Node{Kind: KindSpreadElement, Value: c.expr(inner[0])}
		}
	}
	return c.opaque(n)
}

func (c converter) member(n *sitter.Node) *Node {
	switch n.Type() {
	case "pair":
		key := n.ChildByFieldName("key")
		value := n.ChildByFieldName("value")
		if key == nil || value == nil {
			break
		}
		if key.Type() == "computed_property_name" {
			inner := namedChildren(key)
			if len(inner) != 1 {
				break
			}
			p := Property(c.expr(inner[0]), c.expr(value))
			p.Computed = true
			return p
		}
		return Property(c.expr(key), c.expr(value))
	case "shorthand_property_identifier":
		name := c.text(n)
		return Property(Ident(name), Ident(name))
	case "spread_element":
		return c.expr(n)
	}
	return c.opaque(n)
}

// stringValue decodes a string node into the value it denotes. Escaped
// UTF-16 surrogate pairs are joined; a lone surrogate becomes U+FFFD.
func (c converter) stringValue(n *sitter.Node) string {
	var sb strings.Builder
	var high rune
	flush := func() {
		if high != 0 {
			sb.WriteRune(utf8.RuneError)
			high = 0
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string_fragment", "html_character_reference":
			flush()
			sb.WriteString(c.text(child))
		case "escape_sequence":
			seq := c.text(child)
			unit, ok := surrogateUnit(seq)
			switch {
			case ok && unit < 0xDC00:
				flush()
				high = unit
			case ok && high != 0:
				sb.WriteRune(utf16.DecodeRune(high, unit))
				high = 0
			case ok:
				sb.WriteRune(utf8.RuneError)
			default:
				flush()
				sb.WriteString(decodeEscape(seq))
			}
		}
	}
	flush()
	return sb.String()
}

// surrogateUnit reports whether seq is a \uXXXX escape of a UTF-16 surrogate.
func surrogateUnit(seq string) (rune, bool) {
	if len(seq) != 6 || !strings.HasPrefix(seq, `\u`) {
		return 0, false
	}
	v, err := strconv.ParseUint(seq[2:], 16, 16)
	if err != nil || !utf16.IsSurrogate(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// decodeEscape decodes a single JavaScript escape sequence. Characters
// without a special meaning stand for themselves.
func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	body := seq[1:]
	switch body[0] {
	case '\n', '\r':
		return ""
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'v':
		return "\v"
	case 'x':
		if len(body) == 3 {
			if v, err := strconv.ParseUint(body[1:], 16, 8); err == nil {
				return string(rune(v))
			}
		}
	case 'u':
		hex := body[1:]
		if strings.HasPrefix(hex, "{") && strings.HasSuffix(hex, "}") {
			hex = hex[1 : len(hex)-1]
		}
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v))
		}
	case '0', '1', '2', '3', '4', '5', '6', '7':
		return decodeOctal(body)
	}
	if body == "\u2028" || body == "\u2029" {
		return ""
	}
	return body
}

// decodeOctal decodes a legacy octal escape. Values stop at \377, so a
// leading 4-7 takes at most one more digit and the rest is literal text.
func decodeOctal(digits string) string {
	n := 3
	if digits[0] > '3' {
		n = 2
	}
	end := 0
	for end < len(digits) && end < n && digits[end] >= '0' && digits[end] <= '7' {
		end++
	}
	v, _ := strconv.ParseUint(digits[:end], 8, 8)
	return string(rune(v)) + digits[end:]
}
