// Package errs defines the sentinel errors shared across rtdb's storage, query,
// and wire-protocol layers.
//
// Call sites wrap these with fmt.Errorf("...: %w", ErrX, ...) to attach
// context (a path, a field name, a block ordinal) while keeping the error
// chain matchable with errors.Is.
package errs

import "errors"

var (
	// ErrDecodeFailure is returned when a block fails its codec round-trip
	// check: a read ran past the block budget, or the entry count recorded
	// in the block header disagrees with the bytes actually available.
	ErrDecodeFailure = errors.New("block decode failure")

	// ErrTypeMismatch is returned when a stored block's type tag disagrees
	// with the field's declared type.
	ErrTypeMismatch = errors.New("block type mismatch")

	// ErrIoFailure wraps a file-system failure at field-store open, append,
	// or read time.
	ErrIoFailure = errors.New("storage i/o failure")

	// ErrParseFailure is returned by the statement parser on malformed
	// input. The byte offset at which parsing stopped is attached by the
	// caller via fmt.Errorf.
	ErrParseFailure = errors.New("statement parse failure")

	// ErrRangeInverted marks a query whose end bound precedes its start
	// bound. No code path returns it: SeriesStore.Read short-circuits an
	// inverted range by returning an empty RecordCollection without
	// touching disk.
	ErrRangeInverted = errors.New("query range inverted")

	// ErrUnknownAggregator is returned by the parser when a SELECT
	// expression names an aggregator outside {mean, last, first, min, max}.
	ErrUnknownAggregator = errors.New("unknown aggregator")

	// ErrShortFrame is returned by the wire codec when a length-prefixed
	// frame's declared length exceeds the bytes available to read.
	ErrShortFrame = errors.New("wire frame truncated")

	// ErrUnknownFrameKind is returned when a response frame's kind byte is
	// neither 1 (query result) nor 2 (insert result).
	ErrUnknownFrameKind = errors.New("unknown wire frame kind")

	// ErrStatementTooLarge is returned when an outgoing request statement
	// would not fit in the wire protocol's 16-bit length prefix.
	ErrStatementTooLarge = errors.New("statement exceeds 65535 bytes")
)
