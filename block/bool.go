package block

import (
	"fmt"

	"github.com/Serdnad/rtdb/endian"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/value"
)

// Two-bit value tags packed four entries to a byte, MSB-first.
const (
	boolTagAbsent = 0b00
	boolTagFalse  = 0b10
	boolTagTrue   = 0b11
)

// encodeBool lays out a Bool block as: header, then a run of n
// little-endian int64 timestamps, then ceil(n/4) bytes of 2-bit-packed
// values. A None entry packs as the absent tag rather than being omitted —
// every entry still has a timestamp slot, so the column stays dense.
func encodeBool(b Block) ([]byte, error) {
	n := len(b.Entries)
	timesOff := headerSize
	valuesOff := headerSize + n*8
	packedLen := (n + 3) / 4
	buf := make([]byte, valuesOff+packedLen)
	writeHeader(buf, value.KindBool, n)

	e := endian.Little()
	for i, entry := range b.Entries {
		e.PutUint64(buf[timesOff+i*8:], uint64(entry.Time))

		var tag byte
		switch {
		case entry.Value.IsNone():
			tag = boolTagAbsent
		default:
			bv, ok := entry.Value.AsBool()
			if !ok {
				return nil, fmt.Errorf("%w: entry %d is not a Bool", errs.ErrTypeMismatch, i)
			}
			if bv {
				tag = boolTagTrue
			} else {
				tag = boolTagFalse
			}
		}

		byteIdx := valuesOff + i/4
		shift := uint(6 - 2*(i%4)) // MSB-first: entry 0 occupies bits 7-6
		buf[byteIdx] |= tag << shift
	}

	return buf, nil
}

func decodeBool(buf []byte) (Block, error) {
	n, err := readHeader(buf, value.KindBool)
	if err != nil {
		return Block{}, err
	}

	timesOff := headerSize
	valuesOff := headerSize + n*8
	packedLen := (n + 3) / 4
	need := valuesOff + packedLen
	if len(buf) < need {
		return Block{}, fmt.Errorf("%w: bool block wants %d bytes, has %d", errs.ErrDecodeFailure, need, len(buf))
	}

	e := endian.Little()
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		t := int64(e.Uint64(buf[timesOff+i*8:]))

		byteIdx := valuesOff + i/4
		shift := uint(6 - 2*(i%4))
		tag := (buf[byteIdx] >> shift) & 0b11

		var v value.DataValue
		switch tag {
		case boolTagAbsent:
			v = value.None
		case boolTagFalse:
			v = value.Bool(false)
		case boolTagTrue:
			v = value.Bool(true)
		default:
			return Block{}, fmt.Errorf("%w: entry %d has reserved bool tag", errs.ErrDecodeFailure, i)
		}

		entries[i] = Entry{Time: t, Value: v}
	}

	return Block{Kind: value.KindBool, Entries: entries}, nil
}
