// Package block implements the fixed-budget, per-type codec that packs one
// field's entries into the byte layout persisted by the storage package.
//
// Two concrete encodings exist — one for Float fields, one for Bool fields —
// selected by the field's declared value.Kind. There is no generic
// block-encoder hierarchy: a field only ever holds one of the two, so a type
// switch at the package boundary is all dispatch the codec needs.
package block

import (
	"fmt"

	"github.com/Serdnad/rtdb/endian"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/value"
)

const (
	// EntriesPerBlock bounds the number of entries a single block may hold.
	// Chosen so an encoded float block (8 bytes time + 8 bytes value per
	// entry, plus the header) fits comfortably inside BlockSize.
	EntriesPerBlock = 100

	// BlockSize is the fixed byte budget of one on-disk block slot. Every
	// block, regardless of entry count, occupies exactly BlockSize bytes on
	// disk; unused trailing bytes are zero.
	BlockSize = 4096

	// headerSize is the fixed prefix written before the payload: a kind tag,
	// a reserved byte, and a big-endian entry count.
	headerSize = 4
)

// Entry is one (time, value) pair within a block.
type Entry struct {
	Time  int64
	Value value.DataValue
}

// Block is an ordered, bounded sequence of Entry for one (series, field).
// Blocks are immutable once encoded to disk.
type Block struct {
	Kind    value.Kind
	Entries []Entry
}

// Len reports the number of entries in b.
func (b Block) Len() int { return len(b.Entries) }

// Full reports whether b has reached EntriesPerBlock and must be rotated
// before another entry can be appended.
func (b Block) Full() bool { return len(b.Entries) >= EntriesPerBlock }

// Equal reports whether b and other hold the same kind and entries, used by
// round-trip tests.
func (b Block) Equal(other Block) bool {
	if b.Kind != other.Kind || len(b.Entries) != len(other.Entries) {
		return false
	}

	for i, e := range b.Entries {
		o := other.Entries[i]
		if e.Time != o.Time || !e.Value.Equal(o.Value) {
			return false
		}
	}

	return true
}

// Encode packs b into its on-disk byte representation. The returned slice is
// not padded to BlockSize — the storage package pads or truncates the write
// itself, since Encode does not know the final block's file offset.
func Encode(b Block) ([]byte, error) {
	switch b.Kind {
	case value.KindFloat:
		return encodeFloat(b)
	case value.KindBool:
		return encodeBool(b)
	default:
		return nil, fmt.Errorf("%w: cannot encode kind %s", errs.ErrTypeMismatch, b.Kind)
	}
}

// Decode unpacks buf, which must have been produced by Encode for the given
// kind (or be a BlockSize-aligned slab containing such bytes followed by
// zero padding). A block whose header disagrees with kind fails with
// ErrTypeMismatch; a block whose recorded entry count does not fit the bytes
// available fails with ErrDecodeFailure.
func Decode(buf []byte, kind value.Kind) (Block, error) {
	switch kind {
	case value.KindFloat:
		return decodeFloat(buf)
	case value.KindBool:
		return decodeBool(buf)
	default:
		return Block{}, fmt.Errorf("%w: cannot decode kind %s", errs.ErrTypeMismatch, kind)
	}
}

func writeHeader(buf []byte, kind value.Kind, count int) {
	buf[0] = byte(kind)
	buf[1] = 0
	endian.Big().PutUint16(buf[2:4], uint16(count))
}

func readHeader(buf []byte, want value.Kind) (int, error) {
	if len(buf) < headerSize {
		return 0, fmt.Errorf("%w: block shorter than header", errs.ErrDecodeFailure)
	}

	gotKind := value.Kind(buf[0])
	if gotKind != want {
		return 0, fmt.Errorf("%w: block tagged %s, field declared %s", errs.ErrTypeMismatch, gotKind, want)
	}

	count := int(endian.Big().Uint16(buf[2:4]))

	return count, nil
}
