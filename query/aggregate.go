package query

import (
	"github.com/Serdnad/rtdb/lang"
	"github.com/Serdnad/rtdb/merge"
	"github.com/Serdnad/rtdb/value"
)

// applyAggregators collapses records to a single row when selections names
// at least one aggregator.
//
// A query mixing aggregated and plain selections is treated as fully
// aggregated: every column reduces to one scalar, with a plain (no
// aggregator) selection defaulting to Last — the same value a pass-through
// selection would already show at the final merged row. The output row's
// timestamp is the latest timestamp contributing to any selected column,
// matching the aggregator's "collapse to the latest contributing time"
// semantics.
func applyAggregators(records merge.RecordCollection, selections []lang.Selection) merge.RecordCollection {
	hasAggregator := false
	for _, sel := range selections {
		if sel.Aggregator != lang.AggregatorNone {
			hasAggregator = true
			break
		}
	}

	rows := records.RowCount()
	if !hasAggregator || rows == 0 {
		return records
	}

	width := len(records.Fields) + 1
	latest := records.Elements[0]

	for r := 0; r < rows; r++ {
		t := records.Elements[r*width]
		if ts, ok := t.AsTimestamp(); ok {
			if latestTs, _ := latest.AsTimestamp(); ts > latestTs {
				latest = t
			}
		}
	}

	reduced := make([]value.DataValue, len(records.Fields))
	for col := range records.Fields {
		agg := lang.AggregatorLast
		if col < len(selections) && selections[col].Aggregator != lang.AggregatorNone {
			agg = selections[col].Aggregator
		}

		reduced[col] = reduceColumn(records, width, col, agg)
	}

	elements := make([]value.DataValue, 0, width)
	elements = append(elements, latest)
	elements = append(elements, reduced...)

	return merge.RecordCollection{Fields: records.Fields, Elements: elements}
}

func reduceColumn(records merge.RecordCollection, width, col int, agg lang.Aggregator) value.DataValue {
	rows := records.RowCount()

	var (
		first    value.DataValue = value.None
		last     value.DataValue = value.None
		sum      float64
		count    int
		min, max float64
		haveMin  bool
	)

	for r := 0; r < rows; r++ {
		v := records.Elements[r*width+1+col]
		if v.IsNone() {
			continue
		}

		if first.IsNone() {
			first = v
		}
		last = v

		if f, ok := v.AsFloat(); ok {
			sum += f
			count++
			if !haveMin || f < min {
				min = f
			}
			if !haveMin || f > max {
				max = f
			}
			haveMin = true
		}
	}

	switch agg {
	case lang.AggregatorFirst:
		return first
	case lang.AggregatorLast:
		return last
	case lang.AggregatorMean:
		if count == 0 {
			return value.None
		}

		return value.Float(sum / float64(count))
	case lang.AggregatorMin:
		if !haveMin {
			return last
		}

		return value.Float(min)
	case lang.AggregatorMax:
		if !haveMin {
			return last
		}

		return value.Float(max)
	default:
		return last
	}
}
