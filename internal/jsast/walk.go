package jsast

// Action tells Walk how to proceed after a node has been visited.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip leaves the node's children unvisited. The walk carries on with
	// the node's next sibling.
	Skip
)

// VisitFunc is called for each node with its parent (nil for the root).
type VisitFunc func(n, parent *Node) Action

// Walk visits root and its descendants depth-first, in source order.
func Walk(root *Node, visit VisitFunc) {
	walk(root, nil, visit)
}

func walk(n, parent *Node, visit VisitFunc) {
	if n == nil {
		return
	}
	if visit(n, parent) == Skip {
		return
	}
	for _, child := range n.Children() {
		walk(child, n, visit)
	}
}
