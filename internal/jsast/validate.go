package jsast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// SyntaxError contains structured information about a syntax error.
type SyntaxError struct {
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Column+1, e.Message)
}

// Validate parses src as a single expression and returns an error if it
// does not parse cleanly.
func Validate(ctx context.Context, src []byte) error {
	_, err := ParseExpression(ctx, src)
	return err
}

// SyntaxErrors returns every ERROR and MISSING location in src.
// Returns nil if the source parses cleanly.
func SyntaxErrors(ctx context.Context, src []byte) []SyntaxError {
	root, err := parseTree(ctx, src)
	if err != nil || !root.HasError() {
		return nil
	}
	var errs []SyntaxError
	collectErrors(root, &errs)
	return errs
}

func syntaxErrorAt(root *sitter.Node) *SyntaxError {
	if errNode := findFirstError(root); errNode != nil {
		return newSyntaxError(errNode)
	}
	return &SyntaxError{Message: "AST contains errors"}
}

func newSyntaxError(n *sitter.Node) *SyntaxError {
	msg := "syntax error"
	if n.IsMissing() {
		msg = fmt.Sprintf("missing %s", n.Type())
	}
	return &SyntaxError{
		Line:    n.StartPoint().Row,
		Column:  n.StartPoint().Column,
		Message: msg,
	}
}

// findFirstError does a depth-first search for the first ERROR node.
func findFirstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := findFirstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

func collectErrors(node *sitter.Node, errs *[]SyntaxError) {
	if node.IsError() || node.IsMissing() {
		*errs = append(*errs, *newSyntaxError(node))
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, errs)
		}
	}
}
