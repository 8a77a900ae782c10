package predmap

import (
	"testing"

	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

func buildTree(attrVar int32) *expr.Node {
	n := expr.NumericCompare(expr.GE, "age", value.IntVal(18))
	n.NumericCompare.AttrVar = attrVar
	return n
}

func TestAssignPredIDDedupesIdenticalLeaves(t *testing.T) {
	m := New()

	a := buildTree(1)
	b := buildTree(1)

	m.AssignPredID(a)
	m.AssignPredID(b)

	if a.ID != b.ID {
		t.Fatalf("structurally identical leaves should share an id, got %d and %d", a.ID, b.ID)
	}
	if m.PredCount() != 1 {
		t.Fatalf("expected one distinct predicate, got %d", m.PredCount())
	}
}

func TestAssignPredIDDistinguishesDifferentLeaves(t *testing.T) {
	m := New()

	a := buildTree(1)
	b := buildTree(2)

	m.AssignPredID(a)
	m.AssignPredID(b)

	if a.ID == b.ID {
		t.Fatal("leaves referencing different variables should not share an id")
	}
	if m.PredCount() != 2 {
		t.Fatalf("expected two distinct predicates, got %d", m.PredCount())
	}
}

func TestAssignPredIDDedupesSharedSubtrees(t *testing.T) {
	m := New()

	leaf := func() *expr.Node { return buildTree(1) }
	treeA := expr.And(leaf(), expr.Variable("flag"))
	treeB := expr.And(leaf(), expr.Variable("flag"))
	treeB.Bool.RHS.Bool.AttrVar = 7
	treeA.Bool.RHS.Bool.AttrVar = 7

	m.AssignPredID(treeA)
	m.AssignPredID(treeB)

	if treeA.ID != treeB.ID {
		t.Fatalf("identical AND trees should share an id, got %d and %d", treeA.ID, treeB.ID)
	}
}

func TestAssignPredIDIsDenseFromZero(t *testing.T) {
	m := New()
	ids := make(map[uint32]bool)

	for i := int32(0); i < 5; i++ {
		n := buildTree(i)
		m.AssignPredID(n)
		ids[n.ID] = true
	}

	for i := uint32(0); i < 5; i++ {
		if !ids[i] {
			t.Fatalf("expected dense ids 0..4, missing %d", i)
		}
	}
}
