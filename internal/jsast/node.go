// Package jsast is a small JavaScript expression tree used to read build
// configuration files and regenerate fragments of them.
//
// Trees are produced by Parse from tree-sitter's JavaScript grammar and
// printed back to source by Generate. Nodes carry no source positions, so a
// cloned node is independent of the file it came from.
package jsast

// Kind identifies the shape of a Node.
type Kind int

const (
	KindProgram Kind = iota
	KindVariableDeclaration
	KindVariableDeclarator
	KindIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindArrayExpression
	KindObjectExpression
	KindObjectProperty
	KindCallExpression
	KindMemberExpression
	KindSpreadElement
	// KindOpaque is any expression the tree does not model. Its source
	// text is kept in Text and printed verbatim.
	KindOpaque
)

var kindNames = [...]string{
	KindProgram:             "Program",
	KindVariableDeclaration: "VariableDeclaration",
	KindVariableDeclarator:  "VariableDeclarator",
	KindIdentifier:          "Identifier",
	KindStringLiteral:       "StringLiteral",
	KindNumericLiteral:      "NumericLiteral",
	KindBooleanLiteral:      "BooleanLiteral",
	KindNullLiteral:         "NullLiteral",
	KindArrayExpression:     "ArrayExpression",
	KindObjectExpression:    "ObjectExpression",
	KindObjectProperty:      "ObjectProperty",
	KindCallExpression:      "CallExpression",
	KindMemberExpression:    "MemberExpression",
	KindSpreadElement:       "SpreadElement",
	KindOpaque:              "Opaque",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a JavaScript syntax node. Which fields are meaningful depends on
// Kind:
//
//	Identifier          Text = name
//	StringLiteral       Text = decoded value
//	NumericLiteral      Text = source text
//	BooleanLiteral      Text = "true" or "false"
//	VariableDeclaration Text = "const", "let" or "var"; List = declarators
//	VariableDeclarator  Key = binding; Value = initializer (may be nil)
//	ArrayExpression     List = elements
//	ObjectExpression    List = properties
//	ObjectProperty      Key, Value; Computed for [key] properties
//	CallExpression      Callee; List = arguments
//	MemberExpression    Object, Property; Computed for obj[prop]
//	SpreadElement       Value = argument
//	Opaque              Text = source text
//	Program             List = statements
type Node struct {
	Kind     Kind
	Text     string
	Computed bool
	Key      *Node
	Value    *Node
	Callee   *Node
	Object   *Node
	Property *Node
	List     []*Node
}

// Children returns the non-nil child nodes in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	switch n.Kind {
	case KindCallExpression:
		if n.Callee != nil {
			out = append(out, n.Callee)
		}
		out = append(out, n.List...)
	case KindMemberExpression:
		if n.Object != nil {
			out = append(out, n.Object)
		}
		if n.Property != nil {
			out = append(out, n.Property)
		}
	case KindObjectProperty, KindVariableDeclarator:
		if n.Key != nil {
			out = append(out, n.Key)
		}
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case KindSpreadElement:
		if n.Value != nil {
			out = append(out, n.Value)
		}
	default:
		out = append(out, n.List...)
	}
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:     n.Kind,
		Text:     n.Text,
		Computed: n.Computed,
		Key:      n.Key.Clone(),
		Value:    n.Value.Clone(),
		Callee:   n.Callee.Clone(),
		Object:   n.Object.Clone(),
		Property: n.Property.Clone(),
	}
	if n.List != nil {
		c.List = make([]*Node, len(n.List))
		for i, item := range n.List {
			c.List[i] = item.Clone()
		}
	}
	return c
}

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Kind == k
}

// KeyName returns the static name of a property key: the identifier name,
// the string value or the numeric text. Computed keys have no name.
func (n *Node) KeyName() string {
	if !n.Is(KindObjectProperty) || n.Computed || n.Key == nil {
		return ""
	}
	switch n.Key.Kind {
	case KindIdentifier, KindStringLiteral, KindNumericLiteral:
		return n.Key.Text
	}
	return ""
}

// Ident builds an identifier reference.
func Ident(name string) *Node {
	return &Node{Kind: KindIdentifier, Text: name}
}

// String builds a string literal holding the decoded value.
func String(value string) *Node {
	return &Node{Kind: KindStringLiteral, Text: value}
}

// Array builds an array literal of elems.
func Array(elems ...*Node) *Node {
	return &Node{Kind: KindArrayExpression, List: elems}
}

// Object builds an object literal of props.
func Object(props ...*Node) *Node {
	return &Node{Kind: KindObjectExpression, List: props}
}

// Property builds the non-computed property key: value.
func Property(key, value *Node) *Node {
	return &Node{Kind: KindObjectProperty, Key: key, Value: value}
}

// Call builds callee(args...).
func Call(callee *Node, args ...*Node) *Node {
	return &Node{Kind: KindCallExpression, Callee: callee, List: args}
}

// Member builds the non-computed member expression object.property.
func Member(object, property *Node) *Node {
	return &Node{Kind: KindMemberExpression, Object: object, Property: property}
}

// MethodCall builds object.method(args...).
func MethodCall(object, method string, args ...*Node) *Node {
	return Call(Member(Ident(object), Ident(method)), args...)
}
