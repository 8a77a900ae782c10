package configio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/interner"
)

func TestLoadDomainsRegistersAttributes(t *testing.T) {
	cfg := interner.New()
	doc := `{
		"attributes": [
			{"name": "age", "type": "int64", "bound": {"min": 0, "max": 120}},
			{"name": "country", "type": "string", "bound": {"string_bounded": true, "max_cardinality": 250}},
			{"name": "tags", "type": "int_list", "allow_undefined": true}
		]
	}`

	require.NoError(t, LoadDomains(strings.NewReader(doc), cfg))

	ageID, err := cfg.AttrVarID("age")
	require.NoError(t, err)
	domain, err := cfg.Domain(ageID)
	require.NoError(t, err)
	require.Equal(t, int64(0), domain.Bound.Min.I)
	require.Equal(t, int64(120), domain.Bound.Max.I)

	countryID, err := cfg.AttrVarID("country")
	require.NoError(t, err)
	countryDomain, err := cfg.Domain(countryID)
	require.NoError(t, err)
	require.True(t, countryDomain.Bound.StringBounded)
	require.Equal(t, int32(250), countryDomain.Bound.MaxCardinality)

	tagsID, err := cfg.AttrVarID("tags")
	require.NoError(t, err)
	tagsDomain, err := cfg.Domain(tagsID)
	require.NoError(t, err)
	require.True(t, tagsDomain.AllowUndefined)
}

func TestLoadDomainsRejectsUnknownType(t *testing.T) {
	cfg := interner.New()
	doc := `{"attributes": [{"name": "x", "type": "nonsense"}]}`
	require.Error(t, LoadDomains(strings.NewReader(doc), cfg))
}

func TestDecodeEventResolvesAttributesAndInternsStrings(t *testing.T) {
	cfg := interner.New()
	doc := `{"attributes": [
		{"name": "age", "type": "int64"},
		{"name": "country", "type": "string"}
	]}`
	require.NoError(t, LoadDomains(strings.NewReader(doc), cfg))

	batchDoc := `{"events": [{"attributes": {"age": 30, "country": "US"}}]}`
	batch, err := LoadEventBatch(strings.NewReader(batchDoc))
	require.NoError(t, err)
	require.Len(t, batch.Events, 1)

	ev, err := DecodeEvent(cfg, batch.Events[0])
	require.NoError(t, err)

	ageID, err := cfg.AttrVarID("age")
	require.NoError(t, err)
	v, ok := ev.Get(ageID)
	require.True(t, ok)
	require.Equal(t, int64(30), v.I)

	countryID, err := cfg.AttrVarID("country")
	require.NoError(t, err)
	cv, ok := ev.Get(countryID)
	require.True(t, ok)
	require.Equal(t, countryID, cv.VarID)
	strID, err := cfg.GetIDForString(countryID, "US")
	require.NoError(t, err)
	require.Equal(t, strID, cv.StrID)
}

func TestDecodeEventReservedSpecialAttributes(t *testing.T) {
	cfg := interner.New()
	batchDoc := `{"events": [{
		"now": 1700000000,
		"latitude": 45.5,
		"longitude": -73.6,
		"segments": [{"id": 7, "seconds": 3600, "timestamp_micros": 1699996400000000}],
		"frequency_caps_observed": [{"type": "campaign", "namespace": "home", "value": 2, "timestamp_micros": 1699999000000000}]
	}]}`
	batch, err := LoadEventBatch(strings.NewReader(batchDoc))
	require.NoError(t, err)

	ev, err := DecodeEvent(cfg, batch.Events[0])
	require.NoError(t, err)

	nowVal, ok := ev.Get(cfg.NowVarID())
	require.True(t, ok)
	require.Equal(t, int64(1700000000), nowVal.I)

	segVal, ok := ev.Get(cfg.SegmentsVarID())
	require.True(t, ok)
	require.Len(t, segVal.Segments, 1)
	require.Equal(t, int64(7), segVal.Segments[0].ID)

	capVal, ok := ev.Get(cfg.ObservedFrequencyCapsVarID())
	require.True(t, ok)
	require.Len(t, capVal.FreqCaps, 1)
	require.Equal(t, int64(2), capVal.FreqCaps[0].Value)
}
