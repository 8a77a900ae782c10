package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// S2: false_var or (age > 0), right side must not be touched when left is true.
func TestMatchShortCircuitOr(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("false_var", value.Bool, interner.Bound{}, false)
	require.NoError(t, err)
	_, err = cfg.AddAttrDomain("age", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.Or(
		expr.Variable("false_var"),
		expr.NumericCompare(expr.GT, "age", value.IntVal(0)),
	))

	falseVarID := mustID(t, cfg, "false_var")
	ageID := mustID(t, cfg, "age")

	ev1 := event.New(
		event.Predicate{VarID: falseVarID, Value: value.BoolVal(false)},
		event.Predicate{VarID: ageID, Value: value.IntVal(5)},
	)
	ok, err := MatchNode(cfg, ev1, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	// age is absent entirely; since false_var is true, OR must short-circuit
	// before ever resolving age, so an otherwise-fatal missing attribute
	// must never surface.
	ev2 := event.New(
		event.Predicate{VarID: falseVarID, Value: value.BoolVal(true)},
	)
	ok, err = MatchNode(cfg, ev2, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
}
