// Package merge implements the K-way merge-with-missing-fills operator that
// fuses N time-sorted field columns into a single row-oriented
// RecordCollection.
package merge

import (
	"math"

	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/value"
)

// FieldDescription names one column of a RecordCollection and the type of
// value it carries.
type FieldDescription struct {
	Name string
	Kind value.Kind
}

// RecordCollection is a row-major flattening of a 2-D result matrix: N rows
// of (1 timestamp + len(Fields) values). Column 0 of each row is the
// timestamp; columns 1..len(Fields) are values in Fields order.
type RecordCollection struct {
	Fields   []FieldDescription
	Elements []value.DataValue
}

// Empty returns a RecordCollection with no fields and no rows.
func Empty() RecordCollection {
	return RecordCollection{}
}

// RowCount reports N, the number of rows represented by c.Elements.
func (c RecordCollection) RowCount() int {
	width := len(c.Fields) + 1
	if width == 0 {
		return 0
	}

	return len(c.Elements) / width
}

// exhaustedTime is the sentinel cursor position for a column that has no
// more entries to contribute; it never equals a real timestamp since time
// values are bounded well below it in practice. The minimum scan in the
// merge loop compares it with < against live cursor times, so an exhausted
// column never supplies a row's timestamp while any column has entries
// left.
const exhaustedTime = int64(math.MaxInt64)

// Columns fuses cols (one time-sorted entry slice per field, in the same
// order as fields) into a row-oriented RecordCollection. If every column is
// empty, it returns an empty collection.
func Columns(fields []FieldDescription, cols [][]block.Entry) RecordCollection {
	k := len(cols)

	allEmpty := true
	for _, col := range cols {
		if len(col) > 0 {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return Empty()
	}

	cursors := make([]int, k)
	exhaustedCount := 0

	nextTime := func(i int) int64 {
		if cursors[i] >= len(cols[i]) {
			return exhaustedTime
		}

		return cols[i][cursors[i]].Time
	}

	for i := 0; i < k; i++ {
		if cursors[i] >= len(cols[i]) {
			exhaustedCount++
		}
	}

	var elements []value.DataValue

	for exhaustedCount < k {
		earliest := nextTime(0)
		for i := 1; i < k; i++ {
			if t := nextTime(i); t < earliest {
				earliest = t
			}
		}

		elements = append(elements, value.Timestamp(earliest))

		for i := 0; i < k; i++ {
			if cursors[i] < len(cols[i]) && cols[i][cursors[i]].Time == earliest {
				elements = append(elements, cols[i][cursors[i]].Value)
				cursors[i]++
				if cursors[i] == len(cols[i]) {
					exhaustedCount++
				}
			} else {
				elements = append(elements, value.None)
			}
		}
	}

	return RecordCollection{Fields: fields, Elements: elements}
}
