package endian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLittleRoundTrip(t *testing.T) {
	e := Little()
	buf := make([]byte, 8)
	e.PutUint64(buf, 0x0102030405060708)
	assert.Equal(t, uint64(0x0102030405060708), e.Uint64(buf))
	assert.Equal(t, byte(0x08), buf[0])
}

func TestBigRoundTrip(t *testing.T) {
	e := Big()
	buf := make([]byte, 8)
	e.PutUint64(buf, 0x0102030405060708)
	assert.Equal(t, uint64(0x0102030405060708), e.Uint64(buf))
	assert.Equal(t, byte(0x01), buf[0])
}

func TestAppendUint64(t *testing.T) {
	big := Big().AppendUint64(nil, 42)
	little := Little().AppendUint64(nil, 42)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 42}, big)
	assert.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0}, little)
}

func TestDistinctEngines(t *testing.T) {
	assert.NotEqual(t, Little().Uint64([]byte{1, 0, 0, 0, 0, 0, 0, 0}), Big().Uint64([]byte{1, 0, 0, 0, 0, 0, 0, 0}))
}
