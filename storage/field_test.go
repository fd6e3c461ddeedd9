package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/value"
)

func tp(t int64) *int64 { return &t }

func TestFieldStoreInsertAndReadWithinPendingBlock(t *testing.T) {
	dir := t.TempDir()
	fs, err := LoadFieldStore(dir, "series1", "field1", value.KindFloat)
	require.NoError(t, err)

	for i := int64(0); i < 5; i++ {
		require.NoError(t, fs.Insert(block.Entry{Time: i, Value: value.Float(float64(i))}))
	}

	entries, err := fs.Read(nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, int64(0), entries[0].Time)
	assert.Equal(t, int64(4), entries[4].Time)
}

func TestFieldStoreRollsOverOnCapacity(t *testing.T) {
	dir := t.TempDir()
	fs, err := LoadFieldStore(dir, "series1", "field1", value.KindFloat)
	require.NoError(t, err)

	total := block.EntriesPerBlock + 1
	for i := 0; i < total; i++ {
		require.NoError(t, fs.Insert(block.Entry{Time: int64(i), Value: value.Float(float64(i))}))
	}

	require.Len(t, fs.summaries, 1)

	entries, err := fs.Read(nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, total)
	for i, e := range entries {
		assert.Equal(t, int64(i), e.Time)
	}
}

func TestFieldStoreReadRange(t *testing.T) {
	dir := t.TempDir()
	fs, err := LoadFieldStore(dir, "series1", "field1", value.KindFloat)
	require.NoError(t, err)

	for i := int64(0); i < 10; i++ {
		require.NoError(t, fs.Insert(block.Entry{Time: i * 10, Value: value.Float(float64(i))}))
	}

	entries, err := fs.Read(tp(20), tp(50))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, int64(20), entries[0].Time)
	assert.Equal(t, int64(50), entries[3].Time)
}

func TestFieldStoreReloadPicksUpPersistedBlocks(t *testing.T) {
	dir := t.TempDir()
	fs, err := LoadFieldStore(dir, "series1", "field1", value.KindFloat)
	require.NoError(t, err)

	for i := 0; i < block.EntriesPerBlock+3; i++ {
		require.NoError(t, fs.Insert(block.Entry{Time: int64(i), Value: value.Float(float64(i))}))
	}

	reopened, err := LoadFieldStore(dir, "series1", "field1", value.KindFloat)
	require.NoError(t, err)

	entries, err := reopened.Read(nil, nil)
	require.NoError(t, err)
	assert.Len(t, entries, block.EntriesPerBlock)
}

func TestBoolFieldStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs, err := LoadFieldStore(dir, "series1", "flag", value.KindBool)
	require.NoError(t, err)

	require.NoError(t, fs.Insert(block.Entry{Time: 1, Value: value.Bool(true)}))
	require.NoError(t, fs.Insert(block.Entry{Time: 2, Value: value.None}))
	require.NoError(t, fs.Insert(block.Entry{Time: 3, Value: value.Bool(false)}))

	entries, err := fs.Read(nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[1].Value.IsNone())
}
