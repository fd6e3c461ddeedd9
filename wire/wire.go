// Package wire implements rtdb's length-prefixed binary request/response
// framing. The formats are considered stable and are reproduced bit-for-bit:
// requests carry a u16(BE) length prefix (bounding a statement to 65535
// bytes), responses a u64(BE) length prefix so a single result may span
// gigabytes.
package wire

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/Serdnad/rtdb/endian"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/internal/pool"
)

// ResponseKind tags a response frame's payload.
type ResponseKind uint8

const (
	KindQueryResult  ResponseKind = 1
	KindInsertResult ResponseKind = 2
)

// TypeTag is the wire byte identifying a DataValue's kind in a query
// response's field descriptor and row payload.
type TypeTag uint8

const (
	TypeFloat     TypeTag = 0
	TypeBool      TypeTag = 1
	TypeTimestamp TypeTag = 2
)

// absentBool is the reserved byte marking an absent value in a Bool column
// of a query response row, since 0/1 are both taken by real values.
const absentBool = 0xFF

const maxStatementLen = 1<<16 - 1

// ReadStatement reads one length-prefixed request frame from r and returns
// its statement bytes.
func ReadStatement(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	n := endian.Big().Uint16(lenBuf[:])

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrShortFrame, err)
	}

	return buf, nil
}

// WriteStatement writes stmt to w as a length-prefixed request frame.
func WriteStatement(w io.Writer, stmt []byte) error {
	if len(stmt) > maxStatementLen {
		return fmt.Errorf("%w: %d bytes", errs.ErrStatementTooLarge, len(stmt))
	}

	bb := pool.GetWireBuffer()
	defer pool.PutWireBuffer(bb)

	bb.B = endian.Big().AppendUint16(bb.B, uint16(len(stmt)))
	bb.B = append(bb.B, stmt...)

	_, err := bb.WriteTo(w)

	return err
}

// FieldDescriptor names one column of a query response.
type FieldDescriptor struct {
	Type TypeTag
	Name string
}

// QueryResponse is the payload of a kind=1 response frame.
type QueryResponse struct {
	Fields []FieldDescriptor
	Rows   []Row
}

// Row is one row of a QueryResponse: a timestamp plus one value per field.
type Row struct {
	Time   int64
	Values []Value
}

// Value is a tagged wire value: exactly one of Float/Bool/Timestamp is
// meaningful, selected by the paired FieldDescriptor's Type.
type Value struct {
	Float      float64
	Bool       bool
	BoolAbsent bool
	Timestamp  int64
}

// InsertResponse is the payload of a kind=2 response frame.
type InsertResponse struct {
	Success bool
}

// WriteQueryResponse encodes a kind=1 response frame to w.
func WriteQueryResponse(w io.Writer, resp QueryResponse) error {
	bb := pool.GetWireBuffer()
	defer pool.PutWireBuffer(bb)

	e := endian.Big()

	payload := pool.GetWireBuffer()
	defer pool.PutWireBuffer(payload)

	payload.B = append(payload.B, byte(len(resp.Fields)))
	for _, f := range resp.Fields {
		payload.B = append(payload.B, byte(f.Type))
		payload.B = e.AppendUint16(payload.B, uint16(len(f.Name)))
		payload.B = append(payload.B, f.Name...)
	}

	payload.B = e.AppendUint32(payload.B, uint32(len(resp.Rows)))
	for _, row := range resp.Rows {
		payload.B = e.AppendUint64(payload.B, uint64(row.Time))
		for i, v := range row.Values {
			switch resp.Fields[i].Type {
			case TypeFloat:
				payload.B = e.AppendUint64(payload.B, math.Float64bits(v.Float))
			case TypeBool:
				payload.B = append(payload.B, boolByte(v))
			case TypeTimestamp:
				payload.B = e.AppendUint64(payload.B, uint64(v.Timestamp))
			}
		}
	}

	bb.B = e.AppendUint64(bb.B, uint64(1+len(payload.B)))
	bb.B = append(bb.B, byte(KindQueryResult))
	bb.B = append(bb.B, payload.B...)

	_, err := bb.WriteTo(w)

	return err
}

// WriteInsertResponse encodes a kind=2 response frame to w.
func WriteInsertResponse(w io.Writer, resp InsertResponse) error {
	bb := pool.GetWireBuffer()
	defer pool.PutWireBuffer(bb)

	e := endian.Big()

	bb.B = e.AppendUint64(bb.B, 2)
	bb.B = append(bb.B, byte(KindInsertResult))
	if resp.Success {
		bb.B = append(bb.B, 1)
	} else {
		bb.B = append(bb.B, 0)
	}

	_, err := bb.WriteTo(w)

	return err
}

// ReadResponse reads one response frame from r and decodes it into either a
// QueryResponse or an InsertResponse, tagged by the returned ResponseKind.
func ReadResponse(r io.Reader) (ResponseKind, QueryResponse, InsertResponse, error) {
	br := bufio.NewReader(r)

	var lenBuf [8]byte
	if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
		return 0, QueryResponse{}, InsertResponse{}, err
	}

	e := endian.Big()
	n := e.Uint64(lenBuf[:])

	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return 0, QueryResponse{}, InsertResponse{}, fmt.Errorf("%w: %v", errs.ErrShortFrame, err)
	}

	if len(buf) == 0 {
		return 0, QueryResponse{}, InsertResponse{}, fmt.Errorf("%w: empty frame", errs.ErrShortFrame)
	}

	kind := ResponseKind(buf[0])
	body := buf[1:]

	switch kind {
	case KindQueryResult:
		qr, err := decodeQueryResponse(body)

		return kind, qr, InsertResponse{}, err
	case KindInsertResult:
		if len(body) < 1 {
			return 0, QueryResponse{}, InsertResponse{}, fmt.Errorf("%w: insert response missing success byte", errs.ErrShortFrame)
		}

		return kind, QueryResponse{}, InsertResponse{Success: body[0] != 0}, nil
	default:
		return 0, QueryResponse{}, InsertResponse{}, fmt.Errorf("%w: %d", errs.ErrUnknownFrameKind, kind)
	}
}

func decodeQueryResponse(buf []byte) (QueryResponse, error) {
	e := endian.Big()

	if len(buf) < 1 {
		return QueryResponse{}, fmt.Errorf("%w: missing field count", errs.ErrShortFrame)
	}

	nFields := int(buf[0])
	pos := 1

	fields := make([]FieldDescriptor, nFields)
	for i := 0; i < nFields; i++ {
		if pos+3 > len(buf) {
			return QueryResponse{}, fmt.Errorf("%w: truncated field descriptor", errs.ErrShortFrame)
		}

		typ := TypeTag(buf[pos])
		pos++

		nameLen := int(e.Uint16(buf[pos : pos+2]))
		pos += 2

		if pos+nameLen > len(buf) {
			return QueryResponse{}, fmt.Errorf("%w: truncated field name", errs.ErrShortFrame)
		}

		fields[i] = FieldDescriptor{Type: typ, Name: string(buf[pos : pos+nameLen])}
		pos += nameLen
	}

	if pos+4 > len(buf) {
		return QueryResponse{}, fmt.Errorf("%w: missing row count", errs.ErrShortFrame)
	}

	nRows := int(e.Uint32(buf[pos : pos+4]))
	pos += 4

	rows := make([]Row, nRows)
	for r := 0; r < nRows; r++ {
		if pos+8 > len(buf) {
			return QueryResponse{}, fmt.Errorf("%w: truncated row timestamp", errs.ErrShortFrame)
		}

		t := int64(e.Uint64(buf[pos : pos+8]))
		pos += 8

		values := make([]Value, nFields)
		for i, f := range fields {
			switch f.Type {
			case TypeFloat:
				if pos+8 > len(buf) {
					return QueryResponse{}, fmt.Errorf("%w: truncated float value", errs.ErrShortFrame)
				}

				values[i] = Value{Float: math.Float64frombits(e.Uint64(buf[pos : pos+8]))}
				pos += 8
			case TypeBool:
				if pos+1 > len(buf) {
					return QueryResponse{}, fmt.Errorf("%w: truncated bool value", errs.ErrShortFrame)
				}

				values[i] = decodeBoolValue(buf[pos])
				pos++
			case TypeTimestamp:
				if pos+8 > len(buf) {
					return QueryResponse{}, fmt.Errorf("%w: truncated timestamp value", errs.ErrShortFrame)
				}

				values[i] = Value{Timestamp: int64(e.Uint64(buf[pos : pos+8]))}
				pos += 8
			}
		}

		rows[r] = Row{Time: t, Values: values}
	}

	return QueryResponse{Fields: fields, Rows: rows}, nil
}

func boolByte(v Value) byte {
	if v.BoolAbsent {
		return absentBool
	}
	if v.Bool {
		return 1
	}

	return 0
}

func decodeBoolValue(b byte) Value {
	if b == absentBool {
		return Value{BoolAbsent: true}
	}

	return Value{Bool: b != 0}
}
