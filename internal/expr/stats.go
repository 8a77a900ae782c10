package expr

// Stats is static structural information about one tree (node count,
// depth, and node count per tag), used by host tooling such as
// cmd/bexpr-match's compile subcommand. It does not count distinct
// predicate ids. It is not part of the matcher's hot path.
type Stats struct {
	NodeCount int
	Depth     int
	ByTag     map[Tag]int
}

// CollectStats walks node and computes Stats.
func CollectStats(node *Node) Stats {
	s := Stats{ByTag: make(map[Tag]int)}
	collect(node, 1, &s)
	return s
}

func collect(node *Node, depth int, s *Stats) {
	if node == nil {
		return
	}
	s.NodeCount++
	s.ByTag[node.Tag()]++
	if depth > s.Depth {
		s.Depth = depth
	}
	if node.Tag() == TagBool {
		b := node.Bool
		collect(b.LHS, depth+1, s)
		collect(b.RHS, depth+1, s)
		collect(b.Child, depth+1, s)
	}
}
