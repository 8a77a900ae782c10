package expr

// Walk visits node and every descendant in pre-order, calling visit once
// per node. It is the shared recursion used by ValidateSetSides and by the
// compiler's validators, which only need a uniform "look at every node"
// traversal rather than re-deriving Bool child-traversal order.
func Walk(node *Node, visit func(*Node)) {
	if node == nil {
		return
	}
	visit(node)
	if node.Tag() == TagBool {
		b := node.Bool
		Walk(b.LHS, visit)
		Walk(b.RHS, visit)
		Walk(b.Child, visit)
	}
}
