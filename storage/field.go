package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/internal/log"
	"github.com/Serdnad/rtdb/value"
)

// indexSuffix marks a field's sibling summary file. Filenames ending in this
// suffix are never interpreted as fields when a series directory is scanned.
const indexSuffix = "_index"

// FieldStore owns one field's two append-only files — a data file of
// BlockSize-aligned blocks and an index file of fixed-size BlockSummary
// records — plus the in-memory pending block and a cache of decoded blocks
// addressable by ordinal.
type FieldStore struct {
	SeriesName string
	FieldName  string
	Kind       value.Kind

	dataPath  string
	indexPath string

	summaries []BlockSummary
	cache     []block.Block
	pending   block.Block
}

// LoadFieldStore opens (or creates) the two files backing (seriesName,
// fieldName) under dir, loads all summaries, and initializes an empty
// pending block.
func LoadFieldStore(dir, seriesName, fieldName string, kind value.Kind) (*FieldStore, error) {
	dataPath := filepath.Join(dir, fieldName)
	indexPath := dataPath + indexSuffix

	if err := ensureFile(dataPath); err != nil {
		return nil, err
	}
	if err := ensureFile(indexPath); err != nil {
		return nil, err
	}

	summaries, err := loadSummaries(indexPath)
	if err != nil {
		return nil, err
	}

	return &FieldStore{
		SeriesName: seriesName,
		FieldName:  fieldName,
		Kind:       kind,
		dataPath:   dataPath,
		indexPath:  indexPath,
		summaries:  summaries,
		cache:      make([]block.Block, len(summaries)),
		pending:    block.Block{Kind: kind},
	}, nil
}

func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", errs.ErrIoFailure, path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", errs.ErrIoFailure, path, err)
	}

	return f.Close()
}

// Insert appends entry to the pending block. If the pending block is full,
// it is first flushed: its bytes go to the data file, its summary to the
// index file, the now-persisted block is pushed to the cache, and a fresh
// pending block replaces it.
func (fs *FieldStore) Insert(entry block.Entry) error {
	if fs.pending.Full() {
		if err := fs.flushPending(); err != nil {
			return err
		}
	}

	fs.pending.Entries = append(fs.pending.Entries, entry)

	return nil
}

func (fs *FieldStore) flushPending() error {
	buf, err := block.Encode(fs.pending)
	if err != nil {
		return fmt.Errorf("%w: encoding block for %s/%s: %v", errs.ErrIoFailure, fs.SeriesName, fs.FieldName, err)
	}

	slab := make([]byte, block.BlockSize)
	copy(slab, buf)

	f, err := os.OpenFile(fs.dataPath, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening data file %s: %v", errs.ErrIoFailure, fs.dataPath, err)
	}
	if _, err := f.Write(slab); err != nil {
		f.Close()
		return fmt.Errorf("%w: appending block to %s: %v", errs.ErrIoFailure, fs.dataPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", errs.ErrIoFailure, fs.dataPath, err)
	}

	summary := BlockSummary{
		StartTimestamp:  fs.pending.Entries[0].Time,
		LatestTimestamp: fs.pending.Entries[len(fs.pending.Entries)-1].Time,
	}
	if err := appendSummary(fs.indexPath, summary); err != nil {
		return err
	}

	fs.summaries = append(fs.summaries, summary)
	fs.cache = append(fs.cache, fs.pending)
	fs.pending = block.Block{Kind: fs.Kind}

	return nil
}

// Read returns entries whose timestamp lies in [start, end] (both bounds
// inclusive, both optional), scanned from eligible persisted blocks plus the
// pending block, in block (and therefore time) order.
func (fs *FieldStore) Read(start, end *int64) ([]block.Entry, error) {
	var out []block.Entry

	for ordinal, summary := range fs.summaries {
		if !summary.overlaps(start, end) {
			continue
		}

		b, err := fs.loadBlock(ordinal)
		if err != nil {
			return nil, err
		}

		out = append(out, filterEntries(b.Entries, start, end)...)
	}

	out = append(out, filterEntries(fs.pending.Entries, start, end)...)

	return out, nil
}

// loadBlock returns the decoded block at ordinal, populating the cache on
// miss. A decode failure downgrades to an empty block for that slot rather
// than failing the read.
func (fs *FieldStore) loadBlock(ordinal int) (block.Block, error) {
	if fs.cache[ordinal].Kind != value.KindNone {
		return fs.cache[ordinal], nil
	}

	f, err := os.Open(fs.dataPath)
	if err != nil {
		return block.Block{}, fmt.Errorf("%w: opening data file %s: %v", errs.ErrIoFailure, fs.dataPath, err)
	}
	defer f.Close()

	slab := make([]byte, block.BlockSize)
	if _, err := f.ReadAt(slab, int64(ordinal)*int64(block.BlockSize)); err != nil {
		log.Error(fmt.Sprintf("short read for block %d of %s/%s", ordinal, fs.SeriesName, fs.FieldName), err)
		return block.Block{Kind: fs.Kind}, nil
	}

	decoded, err := block.Decode(slab, fs.Kind)
	if err != nil {
		log.Error(fmt.Sprintf("decode failure for block %d of %s/%s", ordinal, fs.SeriesName, fs.FieldName), err)
		return block.Block{Kind: fs.Kind}, nil
	}

	fs.cache[ordinal] = decoded

	return decoded, nil
}

func filterEntries(entries []block.Entry, start, end *int64) []block.Entry {
	if start == nil && end == nil {
		return entries
	}

	var out []block.Entry
	for _, e := range entries {
		if start != nil && e.Time < *start {
			continue
		}
		if end != nil && e.Time > *end {
			continue
		}
		out = append(out, e)
	}

	return out
}
