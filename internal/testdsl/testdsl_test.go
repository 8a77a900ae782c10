package testdsl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

func TestParseStringNumericCompareAndEquality(t *testing.T) {
	node, err := ParseString(`age >= 18 AND country == "US"`)
	require.NoError(t, err)
	require.Equal(t, expr.TagBool, node.Tag())
	require.Equal(t, expr.AND, node.Bool.Op)
	require.Equal(t, expr.TagNumericCompare, node.Bool.LHS.Tag())
	require.Equal(t, expr.GE, node.Bool.LHS.NumericCompare.Op)
	require.Equal(t, expr.TagEquality, node.Bool.RHS.Tag())
	require.Equal(t, expr.EQ, node.Bool.RHS.Equality.Op)
}

func TestParseStringNotAndParens(t *testing.T) {
	node, err := ParseString(`NOT (flag)`)
	require.NoError(t, err)
	require.Equal(t, expr.NOT, node.Bool.Op)
	require.Equal(t, expr.TagBool, node.Bool.Child.Tag())
	require.Equal(t, expr.VARIABLE, node.Bool.Child.Bool.Op)
	require.Equal(t, "flag", node.Bool.Child.Bool.AttrName)
}

func TestParseStringSetMembership(t *testing.T) {
	node, err := ParseString(`country IN ("US", "CA")`)
	require.NoError(t, err)
	require.Equal(t, expr.TagSet, node.Tag())
	require.Equal(t, expr.IN, node.Set.Op)
	require.True(t, node.Set.LeftIsVar)
	require.Equal(t, value.StringList, node.Set.RightLit.Kind)
	require.Len(t, node.Set.RightLit.StringListVal, 2)
}

func TestParseStringListAllOf(t *testing.T) {
	node, err := ParseString(`tags ALL_OF (1, 2, 3)`)
	require.NoError(t, err)
	require.Equal(t, expr.TagList, node.Tag())
	require.Equal(t, expr.ALL_OF, node.List.Op)
	require.Equal(t, []int64{1, 2, 3}, node.List.Val.IntListVal)
}

func TestParseStringFrequencyCapCall(t *testing.T) {
	node, err := ParseString(`WITHIN_FREQUENCY_CAP(CAMPAIGN, "home", 3, 0)`)
	require.NoError(t, err)
	require.Equal(t, expr.TagSpecial, node.Tag())
	require.NotNil(t, node.Special.FrequencyCap)
	require.Equal(t, value.FreqCapCampaign, node.Special.FrequencyCap.Type)
	require.Equal(t, "home", node.Special.FrequencyCap.Namespace)
	require.Equal(t, int64(3), node.Special.FrequencyCap.Value)
}

func TestParseStringGeoWithinRadius(t *testing.T) {
	node, err := ParseString(`GEO_WITHIN_RADIUS(45.5017, -73.5673, 10)`)
	require.NoError(t, err)
	require.NotNil(t, node.Special.Geo)
	require.InDelta(t, 45.5017, node.Special.Geo.Lat, 1e-9)
	require.InDelta(t, 10, node.Special.Geo.RadiusKM, 1e-9)
}

func TestParseStringRejectsOrderedStringComparison(t *testing.T) {
	_, err := ParseString(`name > "abc"`)
	require.Error(t, err)
}

func TestParseStringSyntaxError(t *testing.T) {
	_, err := ParseString(`age >=`)
	require.Error(t, err)
	var synErr SyntaxError
	require.ErrorAs(t, err, &synErr)
}
