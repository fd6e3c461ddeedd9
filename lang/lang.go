// Package lang implements the byte-oriented statement parser for rtdb's
// small SELECT/INSERT language.
//
// Parsing is done over raw bytes, not runes: the grammar is pure ASCII, and
// working a byte at a time lets identifiers borrow slices directly from the
// lowercased input buffer instead of allocating a copy per token.
package lang

import (
	"fmt"

	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/value"
)

// ActionKind tags which statement a parsed Action holds.
type ActionKind uint8

const (
	ActionSelect ActionKind = iota
	ActionInsert
)

// Action is the parsed result of a statement: exactly one of Select or
// Insert is meaningful, selected by Kind.
type Action struct {
	Kind   ActionKind
	Select SelectQuery
	Insert Insertion
}

// Aggregator names a post-merge column reduction applied to one selection.
// The empty Aggregator ("") means the selection is a plain field with no
// reduction.
type Aggregator string

const (
	AggregatorNone  Aggregator = ""
	AggregatorMean  Aggregator = "mean"
	AggregatorLast  Aggregator = "last"
	AggregatorFirst Aggregator = "first"
	AggregatorMin   Aggregator = "min"
	AggregatorMax   Aggregator = "max"
)

func parseAggregator(name []byte) (Aggregator, bool) {
	switch string(name) {
	case "mean":
		return AggregatorMean, true
	case "last":
		return AggregatorLast, true
	case "first":
		return AggregatorFirst, true
	case "min":
		return AggregatorMin, true
	case "max":
		return AggregatorMax, true
	default:
		return AggregatorNone, false
	}
}

// Selection names one field to read, with an optional aggregator.
type Selection struct {
	Field      string
	Aggregator Aggregator
}

// SelectQuery is a parsed SELECT statement.
type SelectQuery struct {
	Series     string
	Selections []Selection
	Start      *int64
	End        *int64
}

// Insertion is a parsed INSERT statement.
type Insertion struct {
	Series string
	Fields []string
	Values []value.DataValue
	Time   int64
}

// Parse lowercases raw in place and parses it as either a SELECT or an
// INSERT statement. raw is retained by the returned Action's string fields
// (they are zero-copy views into it) — callers must not reuse raw's
// backing array until they are done with the Action.
func Parse(raw []byte) (Action, error) {
	lowerASCII(raw)

	p := &parser{buf: raw}
	p.skipWhitespace()

	switch {
	case p.consumeTag("select"):
		p.skipWhitespace()
		q, err := p.parseSelectQuery()
		if err != nil {
			return Action{}, err
		}

		return Action{Kind: ActionSelect, Select: q}, nil
	case p.consumeTag("insert"):
		p.skipWhitespace()
		ins, err := p.parseInsertion()
		if err != nil {
			return Action{}, err
		}

		return Action{Kind: ActionInsert, Insert: ins}, nil
	default:
		return Action{}, fmt.Errorf("%w: unrecognized statement at position %d", errs.ErrParseFailure, p.pos)
	}
}

func lowerASCII(b []byte) {
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
}

// parser walks buf one byte at a time, tracking a cursor position used in
// ParseFailure{position} errors.
type parser struct {
	buf []byte
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.buf) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.buf[p.pos]
}

func (p *parser) skipWhitespace() {
	for !p.eof() && isSpace(p.buf[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// consumeTag consumes tag (already lowercase) if buf at pos starts with it
// and the byte following it is not an identifier character (so "selectx"
// doesn't match the "select" tag).
func (p *parser) consumeTag(tag string) bool {
	if p.pos+len(tag) > len(p.buf) {
		return false
	}
	if string(p.buf[p.pos:p.pos+len(tag)]) != tag {
		return false
	}

	end := p.pos + len(tag)
	if end < len(p.buf) && isIdentByte(p.buf[end]) {
		return false
	}

	p.pos = end

	return true
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isIdentByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// parseIdent parses [a-z][a-z0-9_-]* and returns a zero-copy view into buf.
func (p *parser) parseIdent() (string, bool) {
	if p.eof() || !isIdentStart(p.buf[p.pos]) {
		return "", false
	}

	start := p.pos
	p.pos++
	for !p.eof() && isIdentByte(p.buf[p.pos]) {
		p.pos++
	}

	return bytesToString(p.buf[start:p.pos]), true
}
