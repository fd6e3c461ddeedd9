package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/value"
)

func mustParse(t *testing.T, stmt string) Action {
	t.Helper()
	a, err := Parse([]byte(stmt))
	require.NoError(t, err)

	return a
}

func TestParseSelectBare(t *testing.T) {
	a := mustParse(t, "SELECT test_series")
	require.Equal(t, ActionSelect, a.Kind)
	assert.Equal(t, "test_series", a.Select.Series)
	assert.Empty(t, a.Select.Selections)
	assert.Nil(t, a.Select.Start)
	assert.Nil(t, a.Select.End)
}

func TestParseSelectWithFields(t *testing.T) {
	a := mustParse(t, "select test_series[value1, value2]")
	require.Equal(t, ActionSelect, a.Kind)
	require.Len(t, a.Select.Selections, 2)
	assert.Equal(t, "value1", a.Select.Selections[0].Field)
	assert.Equal(t, "value2", a.Select.Selections[1].Field)
	assert.Equal(t, AggregatorNone, a.Select.Selections[0].Aggregator)
}

func TestParseSelectWithAggregator(t *testing.T) {
	a := mustParse(t, "SELECT test_series[MEAN(value1), value2]")
	require.Len(t, a.Select.Selections, 2)
	assert.Equal(t, "value1", a.Select.Selections[0].Field)
	assert.Equal(t, AggregatorMean, a.Select.Selections[0].Aggregator)
	assert.Equal(t, AggregatorNone, a.Select.Selections[1].Aggregator)
}

func TestParseSelectUnknownAggregator(t *testing.T) {
	_, err := Parse([]byte("SELECT test_series[bogus(value1)]"))
	assert.ErrorIs(t, err, errs.ErrUnknownAggregator)
}

func TestParseSelectTimeRange(t *testing.T) {
	a := mustParse(t, "select test_series[value1] after 1663226470079106890 before 1663226470079106895")
	require.NotNil(t, a.Select.Start)
	require.NotNil(t, a.Select.End)
	assert.Equal(t, int64(1663226470079106890), *a.Select.Start)
	assert.Equal(t, int64(1663226470079106895), *a.Select.End)
}

func TestParseSelectNow(t *testing.T) {
	before := nowTimestamp()
	a := mustParse(t, "select test_series after now()")
	after := nowTimestamp()
	require.NotNil(t, a.Select.Start)
	assert.GreaterOrEqual(t, *a.Select.Start, before)
	assert.LessOrEqual(t, *a.Select.Start, after)
}

func TestParseInsertSingleField(t *testing.T) {
	a := mustParse(t, "INSERT test_series,field1=1.0")
	require.Equal(t, ActionInsert, a.Kind)
	assert.Equal(t, "test_series", a.Insert.Series)
	assert.Equal(t, []string{"field1"}, a.Insert.Fields)
	f, ok := a.Insert.Values[0].AsFloat()
	require.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestParseInsertMultiFieldWithTimestamp(t *testing.T) {
	a := mustParse(t, "INSERT test_series,value1=0.5,value2=1 1663644227213092171")
	assert.Equal(t, []string{"value1", "value2"}, a.Insert.Fields)
	assert.Equal(t, int64(1663644227213092171), a.Insert.Time)
}

func TestParseInsertBoolValue(t *testing.T) {
	a := mustParse(t, "insert test_series,flag=true")
	b, ok := a.Insert.Values[0].AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestParseInsertMissingTimestampUsesNow(t *testing.T) {
	before := nowTimestamp()
	a := mustParse(t, "insert test_series,field1=1.0")
	after := nowTimestamp()
	assert.GreaterOrEqual(t, a.Insert.Time, before)
	assert.LessOrEqual(t, a.Insert.Time, after)
}

func TestParseInsertRequiresAtLeastOneField(t *testing.T) {
	_, err := Parse([]byte("insert test_series"))
	assert.ErrorIs(t, err, errs.ErrParseFailure)
}

func TestParseUnrecognizedStatement(t *testing.T) {
	_, err := Parse([]byte("delete test_series"))
	assert.ErrorIs(t, err, errs.ErrParseFailure)
}

func TestParseBadValueIsParseFailure(t *testing.T) {
	_, err := Parse([]byte("insert test_series,field1=notabool"))
	assert.ErrorIs(t, err, errs.ErrParseFailure)
}

func TestScanFloatPrefix(t *testing.T) {
	assert.Equal(t, 3, scanFloatPrefix([]byte("1.5,rest")))
	assert.Equal(t, 5, scanFloatPrefix([]byte("-2.25")))
	assert.Equal(t, 0, scanFloatPrefix([]byte("abc")))
}

func TestValueFloatZero(t *testing.T) {
	a := mustParse(t, "insert s,f=0")
	v, ok := a.Insert.Values[0].AsFloat()
	require.True(t, ok)
	assert.Equal(t, value.Float(0).String(), value.Float(v).String())
}
