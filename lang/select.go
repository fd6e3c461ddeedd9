package lang

import (
	"fmt"

	"github.com/Serdnad/rtdb/errs"
)

// parseSelectQuery parses:
//
//	select := "SELECT" ident [ "[" sel (("," sel)*)* "]" ] [ time-range ]
//	sel    := field | aggregator "(" field ")"
//	field  := ident
func (p *parser) parseSelectQuery() (SelectQuery, error) {
	series, ok := p.parseIdent()
	if !ok {
		return SelectQuery{}, fmt.Errorf("%w: expected series name at position %d", errs.ErrParseFailure, p.pos)
	}

	q := SelectQuery{Series: series}

	p.skipWhitespace()
	if p.peek() == '[' {
		sels, err := p.parseSelections()
		if err != nil {
			return SelectQuery{}, err
		}

		q.Selections = sels
	}

	p.skipWhitespace()
	if err := p.parseTimeRange(&q.Start, &q.End); err != nil {
		return SelectQuery{}, err
	}

	return q, nil
}

func (p *parser) parseSelections() ([]Selection, error) {
	p.pos++ // consume '['

	var sels []Selection

	for {
		p.skipWhitespace()

		sel, err := p.parseSelection()
		if err != nil {
			return nil, err
		}

		sels = append(sels, sel)

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case ']':
			p.pos++

			return sels, nil
		default:
			return nil, fmt.Errorf("%w: expected ',' or ']' at position %d", errs.ErrParseFailure, p.pos)
		}
	}
}

// parseSelection parses sel := field | aggregator "(" field ")". Since both
// forms start with an identifier, the aggregator case is disambiguated by
// peeking for a '(' immediately after it.
func (p *parser) parseSelection() (Selection, error) {
	ident, ok := p.parseIdent()
	if !ok {
		return Selection{}, fmt.Errorf("%w: expected field or aggregator at position %d", errs.ErrParseFailure, p.pos)
	}

	if p.peek() != '(' {
		return Selection{Field: ident}, nil
	}

	agg, ok := parseAggregator([]byte(ident))
	if !ok {
		return Selection{}, fmt.Errorf("%w: %s", errs.ErrUnknownAggregator, ident)
	}

	p.pos++ // consume '('

	field, ok := p.parseIdent()
	if !ok {
		return Selection{}, fmt.Errorf("%w: expected field inside %s(...) at position %d", errs.ErrParseFailure, ident, p.pos)
	}

	if p.peek() != ')' {
		return Selection{}, fmt.Errorf("%w: expected ')' at position %d", errs.ErrParseFailure, p.pos)
	}
	p.pos++

	return Selection{Field: field, Aggregator: agg}, nil
}

// parseTimeRange parses time-range := ("AFTER" ts)? ("BEFORE" ts)?.
func (p *parser) parseTimeRange(start, end **int64) error {
	p.skipWhitespace()
	if p.consumeTag("after") {
		p.skipWhitespace()

		ts, ok := p.parseTimestamp()
		if !ok {
			return fmt.Errorf("%w: expected timestamp after AFTER at position %d", errs.ErrParseFailure, p.pos)
		}

		*start = &ts
	}

	p.skipWhitespace()
	if p.consumeTag("before") {
		p.skipWhitespace()

		ts, ok := p.parseTimestamp()
		if !ok {
			return fmt.Errorf("%w: expected timestamp after BEFORE at position %d", errs.ErrParseFailure, p.pos)
		}

		*end = &ts
	}

	return nil
}
