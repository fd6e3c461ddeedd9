package storage

import (
	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/merge"
	"github.com/Serdnad/rtdb/value"
)

// Selection names one field to read, with an optional aggregator applied by
// the query engine after the merge step. Aggregator is the zero value
// (empty string) for a plain field selection.
type Selection struct {
	Field      string
	Aggregator string
}

// Query describes a read against one series: an optional time range and an
// optional set of selections. A nil Start/End is an open bound; an empty
// Selections list means "every loaded field".
type Query struct {
	Start      *int64
	End        *int64
	Selections []Selection
}

// Read executes q against ss, merging every selected field's column into a
// single RecordCollection. If End precedes Start (both given), it returns
// an empty collection without touching any field store. A selection naming
// a field the series has never seen yields an all-None column rather than
// an error.
func (ss *SeriesStore) Read(q Query) (merge.RecordCollection, error) {
	if q.Start != nil && q.End != nil && *q.End < *q.Start {
		return merge.Empty(), nil
	}

	selections := q.Selections
	if len(selections) == 0 {
		for _, fs := range ss.Fields() {
			selections = append(selections, Selection{Field: fs.FieldName})
		}
	}

	fields := make([]merge.FieldDescription, len(selections))
	cols := make([][]block.Entry, len(selections))

	for i, sel := range selections {
		fs := ss.field(sel.Field)
		if fs == nil {
			fields[i] = merge.FieldDescription{Name: sel.Field, Kind: value.KindNone}
			cols[i] = nil

			continue
		}

		fields[i] = merge.FieldDescription{Name: fs.FieldName, Kind: fs.Kind}

		entries, err := fs.Read(q.Start, q.End)
		if err != nil {
			return merge.RecordCollection{}, err
		}

		cols[i] = entries
	}

	return merge.Columns(fields, cols), nil
}
