package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serdnad/rtdb/value"
)

func TestSeriesStoreInsertAndRead(t *testing.T) {
	root := t.TempDir()
	ss, err := NewSeriesStore(root, "metrics")
	require.NoError(t, err)

	require.NoError(t, ss.Insert(Insertion{
		Fields: []string{"value1", "value2"},
		Values: []value.DataValue{value.Float(0.5), value.Bool(true)},
		Time:   100,
	}))
	require.NoError(t, ss.Insert(Insertion{
		Fields: []string{"value1", "value2"},
		Values: []value.DataValue{value.Float(1.5), value.Bool(false)},
		Time:   200,
	}))

	rc, err := ss.Read(Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, rc.RowCount())
	assert.Len(t, rc.Fields, 2)
}

func TestSeriesStoreReadInvertedRangeIsEmpty(t *testing.T) {
	root := t.TempDir()
	ss, err := NewSeriesStore(root, "metrics")
	require.NoError(t, err)

	require.NoError(t, ss.Insert(Insertion{Fields: []string{"v"}, Values: []value.DataValue{value.Float(1)}, Time: 100}))

	start, end := int64(200), int64(100)
	rc, err := ss.Read(Query{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, 0, rc.RowCount())
}

func TestSeriesStoreUnknownFieldYieldsEmptyColumn(t *testing.T) {
	root := t.TempDir()
	ss, err := NewSeriesStore(root, "metrics")
	require.NoError(t, err)

	require.NoError(t, ss.Insert(Insertion{Fields: []string{"v"}, Values: []value.DataValue{value.Float(1)}, Time: 100}))

	rc, err := ss.Read(Query{Selections: []Selection{{Field: "nonexistent"}}})
	require.NoError(t, err)
	assert.Equal(t, 0, rc.RowCount())
	require.Len(t, rc.Fields, 1)
	assert.Equal(t, "nonexistent", rc.Fields[0].Name)
}

func TestLoadSeriesStoreRediscoversFields(t *testing.T) {
	root := t.TempDir()
	ss, err := NewSeriesStore(root, "metrics")
	require.NoError(t, err)
	require.NoError(t, ss.Insert(Insertion{Fields: []string{"v1", "v2"}, Values: []value.DataValue{value.Float(1), value.Float(2)}, Time: 1}))

	reloaded, err := LoadSeriesStore(root, "metrics", func(string) value.Kind { return value.KindFloat })
	require.NoError(t, err)
	assert.Len(t, reloaded.Fields(), 2)
}
