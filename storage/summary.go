// Package storage implements the append-only, file-backed field stores and
// the per-series directory layer that owns them.
package storage

import (
	"fmt"
	"os"

	"github.com/Serdnad/rtdb/endian"
	"github.com/Serdnad/rtdb/errs"
)

// summarySize is the fixed on-disk width of one BlockSummary record: two
// big-endian int64 timestamps.
const summarySize = 16

// BlockSummary records the timestamp range covered by one persisted block.
// Summaries live in a field's sibling index file and are loaded in full when
// the field store opens.
type BlockSummary struct {
	StartTimestamp  int64
	LatestTimestamp int64
}

// overlaps reports whether the summary's range intersects [start, end],
// where a nil bound is unconstrained on that side.
func (s BlockSummary) overlaps(start, end *int64) bool {
	if end != nil && s.StartTimestamp > *end {
		return false
	}
	if start != nil && s.LatestTimestamp < *start {
		return false
	}

	return true
}

func (s BlockSummary) bytes() []byte {
	buf := make([]byte, summarySize)
	e := endian.Big()
	e.PutUint64(buf[0:8], uint64(s.StartTimestamp))
	e.PutUint64(buf[8:16], uint64(s.LatestTimestamp))

	return buf
}

func parseSummary(buf []byte) BlockSummary {
	e := endian.Big()

	return BlockSummary{
		StartTimestamp:  int64(e.Uint64(buf[0:8])),
		LatestTimestamp: int64(e.Uint64(buf[8:16])),
	}
}

// loadSummaries reads every fixed-size BlockSummary record from the index
// file at path. A missing file is treated as zero summaries, matching a
// freshly created field.
func loadSummaries(path string) ([]BlockSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: reading index %s: %v", errs.ErrIoFailure, path, err)
	}

	if len(data)%summarySize != 0 {
		return nil, fmt.Errorf("%w: index %s has trailing partial summary", errs.ErrIoFailure, path)
	}

	n := len(data) / summarySize
	summaries := make([]BlockSummary, n)
	for i := 0; i < n; i++ {
		summaries[i] = parseSummary(data[i*summarySize : (i+1)*summarySize])
	}

	return summaries, nil
}

func appendSummary(path string, s BlockSummary) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening index %s: %v", errs.ErrIoFailure, path, err)
	}
	defer f.Close()

	if _, err := f.Write(s.bytes()); err != nil {
		return fmt.Errorf("%w: appending index %s: %v", errs.ErrIoFailure, path, err)
	}

	return nil
}
