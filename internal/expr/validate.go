package expr

// ValidateSetSides walks node and reports an error if any Set node does
// not have exactly one side marked as a Variable, per spec §3's invariant.
func ValidateSetSides(node *Node) error {
	var err error
	Walk(node, func(n *Node) {
		if err != nil || n.Tag() != TagSet {
			return
		}
		s := n.Set
		if s.LeftIsVar == s.RightIsVar {
			err = InvalidSetSides()
		}
	})
	return err
}
