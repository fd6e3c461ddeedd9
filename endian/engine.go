// Package endian provides the byte-order engines used by rtdb's block codec
// and wire codec.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into
// a single Engine interface so both codecs can depend on one small surface
// instead of importing encoding/binary directly and repeating the
// little-endian/big-endian choice at every call site.
//
// The wire codec always uses Big(): the request/response frame layout is
// fixed and must agree between client and server regardless of host
// architecture. The block codec uses Little() for its float and timestamp
// runs, matching the native packing of the machines rtdb typically runs on.
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder from the standard library
// into one interface. binary.LittleEndian and binary.BigEndian already
// satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine.
func Little() Engine { return binary.LittleEndian }

// Big returns the big-endian engine.
func Big() Engine { return binary.BigEndian }
