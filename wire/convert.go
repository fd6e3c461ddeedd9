package wire

import (
	"github.com/Serdnad/rtdb/merge"
	"github.com/Serdnad/rtdb/value"
)

// FromRecordCollection converts a merge.RecordCollection into the
// QueryResponse wire shape, translating each FieldDescription.Kind into its
// wire TypeTag and each row's leading column into Row.Time.
func FromRecordCollection(rc merge.RecordCollection) QueryResponse {
	fields := make([]FieldDescriptor, len(rc.Fields))
	for i, f := range rc.Fields {
		fields[i] = FieldDescriptor{Type: typeTagOf(f.Kind), Name: f.Name}
	}

	width := len(rc.Fields) + 1
	rows := make([]Row, rc.RowCount())

	for r := range rows {
		base := r * width
		t, _ := rc.Elements[base].AsTimestamp()

		values := make([]Value, len(rc.Fields))
		for i, f := range rc.Fields {
			values[i] = toWireValue(rc.Elements[base+1+i], f.Kind)
		}

		rows[r] = Row{Time: t, Values: values}
	}

	return QueryResponse{Fields: fields, Rows: rows}
}

func typeTagOf(k value.Kind) TypeTag {
	switch k {
	case value.KindBool:
		return TypeBool
	case value.KindTimestamp:
		return TypeTimestamp
	default:
		return TypeFloat
	}
}

func toWireValue(v value.DataValue, k value.Kind) Value {
	if v.IsNone() {
		if k == value.KindBool {
			return Value{BoolAbsent: true}
		}

		return Value{}
	}

	switch k {
	case value.KindBool:
		b, _ := v.AsBool()

		return Value{Bool: b}
	case value.KindTimestamp:
		ts, _ := v.AsTimestamp()

		return Value{Timestamp: ts}
	default:
		f, _ := v.AsFloat()

		return Value{Float: f}
	}
}
