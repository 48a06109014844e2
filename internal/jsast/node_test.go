package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone_IsDeep(t *testing.T) {
	orig := Object(
		Property(Ident("to"), String("dist/a")),
		Property(Ident("args"), Call(Ident("f"), String("x"))),
	)
	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.List[0].Value.Text = "changed"
	c.List[1].Value.List[0].Text = "changed"
	c.List = append(c.List, Property(Ident("extra"), Ident("y")))

	assert.Equal(t, "dist/a", orig.List[0].Value.Text)
	assert.Equal(t, "x", orig.List[1].Value.List[0].Text)
	assert.Len(t, orig.List, 2)
	assert.NotSame(t, orig.List[0], c.List[0])
}

func TestClone_Nil(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Clone())
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "a", Property(Ident("a"), Ident("b")).KeyName())
	assert.Equal(t, "a-b", Property(String("a-b"), Ident("b")).KeyName())

	computed := Property(Ident("a"), Ident("b"))
	computed.Computed = true
	assert.Equal(t, "", computed.KeyName())

	assert.Equal(t, "", Ident("a").KeyName())
}

func TestWalk_Order(t *testing.T) {
	tree := Array(Call(Ident("f"), String("a")), Object(Property(Ident("k"), String("b"))))

	var kinds []Kind
	Walk(tree, func(n, _ *Node) Action {
		kinds = append(kinds, n.Kind)
		return Continue
	})
	assert.Equal(t, []Kind{
		KindArrayExpression,
		KindCallExpression, KindIdentifier, KindStringLiteral,
		KindObjectExpression, KindObjectProperty, KindIdentifier, KindStringLiteral,
	}, kinds)
}

func TestWalk_Skip(t *testing.T) {
	tree := Array(Call(Ident("f"), String("a")), String("b"))

	var seen []string
	Walk(tree, func(n, parent *Node) Action {
		if n.Kind == KindStringLiteral {
			seen = append(seen, n.Text)
		}
		if n.Kind == KindCallExpression {
			assert.Same(t, tree, parent)
			return Skip
		}
		return Continue
	})
	assert.Equal(t, []string{"b"}, seen)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ObjectProperty", KindObjectProperty.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
