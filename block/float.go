package block

import (
	"fmt"
	"math"

	"github.com/Serdnad/rtdb/endian"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/internal/pool"
	"github.com/Serdnad/rtdb/value"
)

// encodeFloat lays out a Float block as: header, then a run of n
// little-endian int64 timestamps, then a run of n little-endian IEEE-754
// float64 values. Separating the two runs keeps same-typed bytes adjacent,
// which is friendlier to delta/XOR encoders layered on top later even though
// none is wired in this version.
//
// b.Entries is row-oriented (time, value) pairs; times and values stage the
// columnar split in pooled scratch slices before the interleave-free copy
// into buf.
func encodeFloat(b Block) ([]byte, error) {
	n := len(b.Entries)

	times, releaseTimes := pool.GetInt64Slice(n)
	defer releaseTimes()
	values, releaseValues := pool.GetFloat64Slice(n)
	defer releaseValues()

	for i, entry := range b.Entries {
		f, ok := entry.Value.AsFloat()
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not a Float", errs.ErrTypeMismatch, i)
		}

		times[i] = entry.Time
		values[i] = f
	}

	buf := make([]byte, headerSize+n*8+n*8)
	writeHeader(buf, value.KindFloat, n)

	e := endian.Little()
	timesOff := headerSize
	valuesOff := headerSize + n*8

	for i := 0; i < n; i++ {
		e.PutUint64(buf[timesOff+i*8:], uint64(times[i]))
		e.PutUint64(buf[valuesOff+i*8:], math.Float64bits(values[i]))
	}

	return buf, nil
}

func decodeFloat(buf []byte) (Block, error) {
	n, err := readHeader(buf, value.KindFloat)
	if err != nil {
		return Block{}, err
	}

	timesOff := headerSize
	valuesOff := headerSize + n*8
	need := valuesOff + n*8
	if len(buf) < need {
		return Block{}, fmt.Errorf("%w: float block wants %d bytes, has %d", errs.ErrDecodeFailure, need, len(buf))
	}

	e := endian.Little()
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		t := int64(e.Uint64(buf[timesOff+i*8:]))
		v := math.Float64frombits(e.Uint64(buf[valuesOff+i*8:]))
		entries[i] = Entry{Time: t, Value: value.Float(v)}
	}

	return Block{Kind: value.KindFloat, Entries: entries}, nil
}
