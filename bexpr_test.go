package bexpr

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

func TestEngineParseCompileAndMatch(t *testing.T) {
	e := New()
	_, err := e.AddAttrDomain("age", value.Int64, interner.Bound{}, false)
	require.NoError(t, err)

	tree, err := e.ParseAndCompile("age >= 18")
	require.NoError(t, err)

	ageID, err := e.Config().AttrVarID("age")
	require.NoError(t, err)

	ev := &Event{Predicates: []Predicate{{VarID: ageID, Value: value.IntVal(21)}}}
	ok, err := e.Match(ev, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	evTooYoung := &Event{Predicates: []Predicate{{VarID: ageID, Value: value.IntVal(10)}}}
	ok, err = e.Match(evTooYoung, tree, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineBound(t *testing.T) {
	e := New()
	_, err := e.AddAttrDomain("x", value.Int64, interner.Bound{Min: value.IntVal(0), Max: value.IntVal(100)}, false)
	require.NoError(t, err)

	tree, err := e.ParseAndCompile("x >= 10 AND x <= 20")
	require.NoError(t, err)

	interval, err := e.Bound("x", tree)
	require.NoError(t, err)
	require.Equal(t, int64(10), interval.Min.I)
	require.Equal(t, int64(20), interval.Max.I)
}

func TestEngineLoadDomainsAndDecodeEvent(t *testing.T) {
	e := New()
	require.NoError(t, e.LoadDomains(strings.NewReader(`{"attributes":[{"name":"age","type":"int64"}]}`)))

	tree, err := e.ParseAndCompile("age >= 18")
	require.NoError(t, err)

	ev, err := e.DecodeEvent(EventJSON{Attributes: map[string]json.RawMessage{"age": json.RawMessage("30")}})
	require.NoError(t, err)

	ok, err := e.Match(ev, tree, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
}
