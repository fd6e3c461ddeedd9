// Package value defines the DataValue tagged union shared by every layer of
// rtdb: storage blocks, the merge operator, the statement parser, and the
// wire codec all move values around as a DataValue rather than as
// type-specific scalars.
package value

import (
	"fmt"
	"math"
)

// Kind tags the variant held by a DataValue.
type Kind uint8

const (
	// KindNone marks an absent value — a column that contributed no entry
	// at a given merged timestamp.
	KindNone Kind = iota
	// KindBool holds a boolean measurement.
	KindBool
	// KindFloat holds a float64 measurement.
	KindFloat
	// KindTimestamp holds a nanosecond timestamp, used for the leading
	// column of a merged row rather than for field storage.
	KindTimestamp
)

// String renders the kind's name, used in log fields and error messages.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindFloat:
		return "Float"
	case KindTimestamp:
		return "Timestamp"
	default:
		return "Unknown"
	}
}

// ByteWidth returns the canonical big-endian encoding width for the kind:
// 0 for None, 1 for Bool, 8 for Timestamp and Float.
func (k Kind) ByteWidth() int {
	switch k {
	case KindNone:
		return 0
	case KindBool:
		return 1
	case KindFloat, KindTimestamp:
		return 8
	default:
		return 0
	}
}

// DataValue is a total, copyable tagged union over {None, Timestamp, Bool,
// Float}. The zero value is None.
type DataValue struct {
	kind  Kind
	bits  uint64 // float64 bits, or timestamp; unused (0) for bool
	bool_ bool
}

// None is the canonical absent-value DataValue.
var None = DataValue{kind: KindNone}

// Bool constructs a Bool DataValue.
func Bool(b bool) DataValue {
	return DataValue{kind: KindBool, bool_: b}
}

// Float constructs a Float DataValue.
func Float(f float64) DataValue {
	return DataValue{kind: KindFloat, bits: math.Float64bits(f)}
}

// Timestamp constructs a Timestamp DataValue from nanoseconds since the Unix
// epoch.
func Timestamp(ns int64) DataValue {
	return DataValue{kind: KindTimestamp, bits: uint64(ns)}
}

// Kind reports the tag held by v.
func (v DataValue) Kind() Kind { return v.kind }

// IsNone reports whether v holds no value.
func (v DataValue) IsNone() bool { return v.kind == KindNone }

// AsBool returns v's boolean value and whether v was actually a Bool.
func (v DataValue) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.bool_, true
}

// AsFloat returns v's float value and whether v was actually a Float.
func (v DataValue) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}

	return math.Float64frombits(v.bits), true
}

// AsTimestamp returns v's timestamp value and whether v was actually a
// Timestamp.
func (v DataValue) AsTimestamp() (int64, bool) {
	if v.kind != KindTimestamp {
		return 0, false
	}

	return int64(v.bits), true
}

// ToBEBytes encodes v using the canonical big-endian width for its kind:
// zero bytes for None, one byte for Bool (0x00/0x01), eight bytes for
// Timestamp and Float.
func (v DataValue) ToBEBytes() []byte {
	switch v.kind {
	case KindNone:
		return nil
	case KindBool:
		if v.bool_ {
			return []byte{1}
		}

		return []byte{0}
	case KindFloat, KindTimestamp:
		buf := make([]byte, 8)
		putUint64BE(buf, v.bits)

		return buf
	default:
		return nil
	}
}

func putUint64BE(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

// String implements fmt.Stringer for display and log output.
func (v DataValue) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		return fmt.Sprintf("%t", v.bool_)
	case KindFloat:
		return fmt.Sprintf("%g", math.Float64frombits(v.bits))
	case KindTimestamp:
		return fmt.Sprintf("%d", int64(v.bits))
	default:
		return "?"
	}
}

// Equal reports whether v and other hold the same kind and value.
func (v DataValue) Equal(other DataValue) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNone:
		return true
	case KindBool:
		return v.bool_ == other.bool_
	default:
		return v.bits == other.bits
	}
}
