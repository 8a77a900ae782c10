package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// S1: age >= 18 and country in ("US","CA")
func TestMatchAgeAndCountry(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("age", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)
	_, err = cfg.AddAttrDomain("country", value.String, interner.Bound{StringBounded: true, MaxCardinality: 10}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.And(
		expr.NumericCompare(expr.GE, "age", value.IntVal(18)),
		expr.SetIntVar(expr.IN, "country", value.Strs("US", "CA")),
	))

	ageID := mustID(t, cfg, "age")
	countryID := mustID(t, cfg, "country")
	countryStrID := func(lit string) int32 {
		id, err := cfg.GetIDForString(countryID, lit)
		require.NoError(t, err)
		return id
	}

	usID := countryStrID("US")
	mxStrID, err := cfg.GetIDForString(countryID, "MX")
	require.NoError(t, err)

	ev1 := event.New(
		event.Predicate{VarID: ageID, Value: value.IntVal(21)},
		event.Predicate{VarID: countryID, Value: value.InternedStr(countryID, usID, "US")},
	)
	ok, err := MatchNode(cfg, ev1, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	ev2 := event.New(
		event.Predicate{VarID: ageID, Value: value.IntVal(17)},
		event.Predicate{VarID: countryID, Value: value.InternedStr(countryID, usID, "US")},
	)
	ok, err = MatchNode(cfg, ev2, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)

	ev3 := event.New(
		event.Predicate{VarID: ageID, Value: value.IntVal(21)},
		event.Predicate{VarID: countryID, Value: value.InternedStr(countryID, mxStrID, "MX")},
	)
	ok, err = MatchNode(cfg, ev3, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

// S3: tags all_of (1,2,3)
func TestMatchListAllOf(t *testing.T) {
	cfg := interner.New()
	_, err := cfg.AddAttrDomain("tags", value.IntList, interner.Bound{}, false)
	require.NoError(t, err)

	tree := compileFor(t, cfg, expr.List(expr.ALL_OF, "tags", value.Ints(1, 2, 3)))
	tagsID := mustID(t, cfg, "tags")

	ev1 := event.New(event.Predicate{VarID: tagsID, Value: value.Ints(3, 1, 2, 4)})
	ok, err := MatchNode(cfg, ev1, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	ev2 := event.New(event.Predicate{VarID: tagsID, Value: value.Ints(1, 2)})
	ok, err = MatchNode(cfg, ev2, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

// S4: geo_within_radius(lat=45.5017, lon=-73.5673, radius=10), Montreal.
func TestMatchGeoWithinRadius(t *testing.T) {
	cfg := interner.New()
	tree := compileFor(t, cfg, expr.GeoWithinRadius(45.5017, -73.5673, 10))

	latID := cfg.LatitudeVarID()
	lonID := cfg.LongitudeVarID()

	near := event.New(
		event.Predicate{VarID: latID, Value: value.FloatVal(45.5088)},
		event.Predicate{VarID: lonID, Value: value.FloatVal(-73.5878)},
	)
	ok, err := MatchNode(cfg, near, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	far := event.New(
		event.Predicate{VarID: latID, Value: value.FloatVal(40.7128)},
		event.Predicate{VarID: lonID, Value: value.FloatVal(-74.0060)},
	)
	ok, err = MatchNode(cfg, far, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

// S5: frequency cap at the boundary (3 > 3 is false) and just over it.
func TestMatchFrequencyCapBoundary(t *testing.T) {
	cfg := interner.New()
	nsVar := cfg.FrequencyCapsVarID()
	nsID, err := cfg.GetIDForString(nsVar, "home")
	require.NoError(t, err)

	caps := []value.FrequencyCap{
		{Type: value.FreqCapCampaign, ID: FrequencyTypeObjectID(value.FreqCapCampaign), NamespaceStrID: nsID, Value: 3, TimestampMicros: 1_600_000_000_000_000},
	}

	nowID := cfg.NowVarID()
	capsID := cfg.ObservedFrequencyCapsVarID()
	ev := event.New(
		event.Predicate{VarID: nowID, Value: value.IntVal(1_600_000_060)},
		event.Predicate{VarID: capsID, Value: value.Value{Kind: value.FrequencyCapList, FreqCaps: caps}},
	)

	tree3 := compileFor(t, cfg, expr.WithinFrequencyCap(value.FreqCapCampaign, "home", 3, 0))
	ok, err := MatchNode(cfg, ev, tree3, nil, nil)
	require.NoError(t, err)
	require.False(t, ok, "3 > 3 must be false")

	tree4 := compileFor(t, cfg, expr.WithinFrequencyCap(value.FreqCapCampaign, "home", 4, 0))
	ok, err = MatchNode(cfg, ev, tree4, nil, nil)
	require.NoError(t, err)
	require.True(t, ok, "4 > 3 must be true")
}

// Segment WITHIN/BEFORE: id 42 enrolled 100s before now.
func TestMatchSegmentWithinAndBefore(t *testing.T) {
	cfg := interner.New()
	nowID := cfg.NowVarID()
	segmentsID := cfg.SegmentsVarID()

	const now int64 = 1_700_000_000
	const enrolledAt int64 = now - 100
	segs := []value.Segment{{ID: 42, TimestampMicros: enrolledAt * 1_000_000}}

	ev := event.New(
		event.Predicate{VarID: nowID, Value: value.IntVal(now)},
		event.Predicate{VarID: segmentsID, Value: value.Value{Kind: value.SegmentList, Segments: segs}},
	)

	within200 := compileFor(t, cfg, expr.SegmentWithinPredicate(42, 200))
	ok, err := MatchNode(cfg, ev, within200, nil, nil)
	require.NoError(t, err)
	require.True(t, ok, "enrolled 100s ago is within a 200s window")

	within50 := compileFor(t, cfg, expr.SegmentWithinPredicate(42, 50))
	ok, err = MatchNode(cfg, ev, within50, nil, nil)
	require.NoError(t, err)
	require.False(t, ok, "enrolled 100s ago is not within a 50s window")

	before50 := compileFor(t, cfg, expr.SegmentBeforePredicate(42, 50))
	ok, err = MatchNode(cfg, ev, before50, nil, nil)
	require.NoError(t, err)
	require.True(t, ok, "enrolled 100s ago is before a 50s cutoff")

	before200 := compileFor(t, cfg, expr.SegmentBeforePredicate(42, 200))
	ok, err = MatchNode(cfg, ev, before200, nil, nil)
	require.NoError(t, err)
	require.False(t, ok, "enrolled 100s ago is not before a 200s cutoff")
}

// Segment id not present in the (sorted) segments list: the scan runs past
// it without a match, regardless of op.
func TestMatchSegmentIDNotPresent(t *testing.T) {
	cfg := interner.New()
	nowID := cfg.NowVarID()
	segmentsID := cfg.SegmentsVarID()

	segs := []value.Segment{
		{ID: 10, TimestampMicros: 1_600_000_000_000_000},
		{ID: 99, TimestampMicros: 1_600_000_000_000_000},
	}
	ev := event.New(
		event.Predicate{VarID: nowID, Value: value.IntVal(1_600_000_100)},
		event.Predicate{VarID: segmentsID, Value: value.Value{Kind: value.SegmentList, Segments: segs}},
	)

	tree := compileFor(t, cfg, expr.SegmentWithinPredicate(42, 3600))
	ok, err := MatchNode(cfg, ev, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

// An event with no segments list at all resolves as UNDEFINED, which the
// Segment predicate treats as false rather than a fault.
func TestMatchSegmentAbsentSegmentsList(t *testing.T) {
	cfg := interner.New()
	nowID := cfg.NowVarID()

	ev := event.New(event.Predicate{VarID: nowID, Value: value.IntVal(1_600_000_100)})

	tree := compileFor(t, cfg, expr.SegmentWithinPredicate(42, 3600))
	ok, err := MatchNode(cfg, ev, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}
