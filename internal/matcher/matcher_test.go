package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/compiler"
	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/predmap"
	"github.com/ritamzico/bexpr/internal/value"
)

func compileFor(t *testing.T, cfg *interner.Config, node *expr.Node) *expr.Node {
	t.Helper()
	compiled, err := compiler.Compile(cfg, predmap.New(), node)
	require.NoError(t, err)
	return compiled
}

func mustID(t *testing.T, cfg *interner.Config, name string) int32 {
	t.Helper()
	id, err := cfg.AttrVarID(name)
	require.NoError(t, err)
	return id
}

// NOT of an undefined-attribute predicate must stay false, not flip to true.
func TestMatchNotUndefinedDoesNotFlip(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("maybe", value.Int64, interner.Bound{}, true)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.Not(expr.Equality(expr.EQ, "maybe", value.IntVal(5))))
	ev := event.New() // "maybe" is absent but allow_undefined

	ok, err := MatchNode(cfg, ev, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok, "NOT(undefined predicate) must be false, not true")
}

// A required (non-allow_undefined) attribute missing from the event is a
// fatal contract violation, not an ordinary false.
func TestMatchMissingRequiredAttributeFaults(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("required", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.Equality(expr.EQ, "required", value.IntVal(5)))
	ev := event.New()

	_, err = MatchNode(cfg, ev, tree, nil, nil)
	require.Error(t, err)
	var fault Fault
	require.ErrorAs(t, err, &fault)
}

// Memoization soundness: the result must not depend on the Memoize's
// initial state, empty or pre-seeded.
func TestMatchMemoizationSoundness(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("age", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.And(
		expr.NumericCompare(expr.GE, "age", value.IntVal(18)),
		expr.NumericCompare(expr.LE, "age", value.IntVal(65)),
	))
	ageID := mustID(t, cfg, "age")
	ev := event.New(event.Predicate{VarID: ageID, Value: value.IntVal(30)})

	m1 := NewMemoize(1024)
	r1, err := MatchNode(cfg, ev, tree, m1, &Report{})
	require.NoError(t, err)

	m2 := NewMemoize(1024)
	_, err = MatchNode(cfg, ev, tree, m2, &Report{})
	require.NoError(t, err)
	r2, err := MatchNode(cfg, ev, tree, m2, &Report{})
	require.NoError(t, err)

	require.Equal(t, r1, r2)

	noMemo, err := MatchNode(cfg, ev, tree, nil, nil)
	require.NoError(t, err)
	require.Equal(t, r1, noMemo)
}

func TestMemoizeRecordsTopLevelAndSubExpressionHits(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("age", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.NumericCompare(expr.GE, "age", value.IntVal(18)))
	ageID := mustID(t, cfg, "age")
	ev := event.New(event.Predicate{VarID: ageID, Value: value.IntVal(30)})

	memo := NewMemoize(64)
	report := &Report{}
	_, err = MatchNode(cfg, ev, tree, memo, report)
	require.NoError(t, err)
	require.Zero(t, report.SubExpressionsMemoized)

	_, err = MatchNode(cfg, ev, tree, memo, report)
	require.NoError(t, err)
	require.Equal(t, int64(1), report.SubExpressionsMemoized)
	require.Equal(t, int64(1), report.ExpressionsMemoized)
}
