// Package expr defines the typed expression tree: a tagged tree of
// Boolean-combinable typed predicates. Each node carries exactly one of a
// closed set of payload pointers (NumericCompare, Equality, Bool, Set,
// List, Special) — mirroring the teacher's own dispatch-struct idiom
// (internal/dsl.Grammar{Statement, Query}, StatementAST{Create, Delete}) —
// so that every consumer switches exhaustively on Tag() rather than relying
// on interface polymorphism.
package expr

import "math"

// PredIDUnassigned is the node id every freshly parsed node carries until
// assign_pred_id runs.
const PredIDUnassigned = math.MaxUint32

// Tag identifies which payload a Node carries.
type Tag int

const (
	TagNumericCompare Tag = iota
	TagEquality
	TagBool
	TagSet
	TagList
	TagSpecial
)

func (t Tag) String() string {
	switch t {
	case TagNumericCompare:
		return "NumericCompare"
	case TagEquality:
		return "Equality"
	case TagBool:
		return "Bool"
	case TagSet:
		return "Set"
	case TagList:
		return "List"
	case TagSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// Node is one tree node. Its id is the predicate id, PredIDUnassigned until
// assign_pred_id has run. Exactly one of the payload fields is non-nil.
type Node struct {
	ID uint32

	NumericCompare *NumericCompareNode
	Equality       *EqualityNode
	Bool           *BoolNode
	Set            *SetNode
	List           *ListNode
	Special        *SpecialNode
}

// Tag reports which payload this node carries. Panics if the node is
// malformed (no payload set), which can only happen if a Node was
// hand-built incorrectly rather than through the constructors below.
func (n *Node) Tag() Tag {
	switch {
	case n.NumericCompare != nil:
		return TagNumericCompare
	case n.Equality != nil:
		return TagEquality
	case n.Bool != nil:
		return TagBool
	case n.Set != nil:
		return TagSet
	case n.List != nil:
		return TagList
	case n.Special != nil:
		return TagSpecial
	default:
		panic("expr: malformed node carries no payload")
	}
}
