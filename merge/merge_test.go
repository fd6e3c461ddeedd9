package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/value"
)

func fields(names ...string) []FieldDescription {
	fs := make([]FieldDescription, len(names))
	for i, n := range names {
		fs[i] = FieldDescription{Name: n, Kind: value.KindFloat}
	}

	return fs
}

func TestMergeAligned(t *testing.T) {
	cols := [][]block.Entry{
		{{Time: 1, Value: value.Float(1)}, {Time: 2, Value: value.Float(2)}},
		{{Time: 1, Value: value.Float(3)}, {Time: 2, Value: value.Float(4)}},
	}

	rc := Columns(fields("field1", "field2"), cols)
	assert.Equal(t, 2, rc.RowCount())
	assert.Equal(t, []value.DataValue{
		value.Timestamp(1), value.Float(1), value.Float(3),
		value.Timestamp(2), value.Float(2), value.Float(4),
	}, rc.Elements)
}

func TestMergeMixed(t *testing.T) {
	cols := [][]block.Entry{
		{{Time: 1, Value: value.Float(1)}, {Time: 2, Value: value.Float(2)}, {Time: 3, Value: value.Float(5)}},
		{{Time: 2, Value: value.Float(3)}, {Time: 4, Value: value.Float(4)}},
	}

	rc := Columns(fields("field1", "field2"), cols)
	require.Equal(t, 4, rc.RowCount())
	assert.Equal(t, []value.DataValue{
		value.Timestamp(1), value.Float(1), value.None,
		value.Timestamp(2), value.Float(2), value.Float(3),
		value.Timestamp(3), value.Float(5), value.None,
		value.Timestamp(4), value.None, value.Float(4),
	}, rc.Elements)
}

func TestMergeThreeColumnsWithTieCollapse(t *testing.T) {
	cols := [][]block.Entry{
		{{Time: 1, Value: value.Float(1)}, {Time: 2, Value: value.Float(2)}},
		{{Time: 2, Value: value.Float(3)}},
		{{Time: 2, Value: value.Float(3)}},
	}

	rc := Columns(fields("field1", "field2", "field3"), cols)
	require.Equal(t, 2, rc.RowCount())
	assert.Equal(t, []value.DataValue{
		value.Timestamp(1), value.Float(1), value.None, value.None,
		value.Timestamp(2), value.Float(2), value.Float(3), value.Float(3),
	}, rc.Elements)
}

func TestMergeAllColumnsEmpty(t *testing.T) {
	cols := [][]block.Entry{{}, {}}
	rc := Columns(fields("field1", "field2"), cols)
	assert.Equal(t, Empty(), rc)
}

func TestMergeExhaustedColumnKeepsContributingNone(t *testing.T) {
	cols := [][]block.Entry{
		{{Time: 1, Value: value.Float(1)}},
		{{Time: 1, Value: value.Float(2)}, {Time: 5, Value: value.Float(3)}, {Time: 9, Value: value.Float(4)}},
	}

	rc := Columns(fields("a", "b"), cols)
	require.Equal(t, 3, rc.RowCount())
	assert.Equal(t, value.None, rc.Elements[4])
	assert.Equal(t, value.None, rc.Elements[7])
}
