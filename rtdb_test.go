package rtdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBInsertAndQuery(t *testing.T) {
	db := Open(t.TempDir())

	require.NoError(t, db.Insert("insert cpu,usage=0.5 100"))
	require.NoError(t, db.Insert("insert cpu,usage=0.75 200"))

	rc, err := db.Query("select cpu[usage]")
	require.NoError(t, err)
	assert.Equal(t, 2, rc.RowCount())
}

func TestDBQueryEmptySeries(t *testing.T) {
	db := Open(t.TempDir())

	rc, err := db.Query("select nosuch[v]")
	require.NoError(t, err)
	assert.Equal(t, 0, rc.RowCount())
}
