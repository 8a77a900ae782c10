package expr

import (
	"testing"

	"github.com/ritamzico/bexpr/internal/value"
)

func TestEqStructuralEquality(t *testing.T) {
	a := And(
		NumericCompare(GE, "age", value.IntVal(18)),
		SetIntVar(IN, "country", value.Strs("US", "CA")),
	)
	b := And(
		NumericCompare(GE, "age", value.IntVal(18)),
		SetIntVar(IN, "country", value.Strs("US", "CA")),
	)

	if !Eq(a, b) {
		t.Fatal("structurally identical trees should be equal")
	}

	b.Bool.LHS.NumericCompare.Val = value.IntVal(19)
	if Eq(a, b) {
		t.Fatal("trees differing in a literal should not be equal")
	}
}

func TestEqFloatUsesEpsilon(t *testing.T) {
	a := NumericCompare(GT, "score", value.FloatVal(1.0))
	b := NumericCompare(GT, "score", value.FloatVal(1.0+value.FloatEpsilon/2))
	if !Eq(a, b) {
		t.Fatal("floats within epsilon should compare equal")
	}
}

func TestEqDistinguishesTags(t *testing.T) {
	a := Variable("flag")
	b := NumericCompare(GE, "flag", value.IntVal(1))
	if Eq(a, b) {
		t.Fatal("nodes of different tags should never be equal")
	}
}
