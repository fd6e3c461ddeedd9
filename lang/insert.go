package lang

import (
	"fmt"

	"github.com/Serdnad/rtdb/errs"
)

// parseInsertion parses:
//
//	insert := "INSERT" ident ( "," field "=" value )+ [ digits ]
//	field  := ident
func (p *parser) parseInsertion() (Insertion, error) {
	series, ok := p.parseIdent()
	if !ok {
		return Insertion{}, fmt.Errorf("%w: expected series name at position %d", errs.ErrParseFailure, p.pos)
	}

	ins := Insertion{Series: series}

	for {
		p.skipWhitespace()
		if p.peek() != ',' {
			break
		}
		p.pos++
		p.skipWhitespace()

		field, ok := p.parseIdent()
		if !ok {
			return Insertion{}, fmt.Errorf("%w: expected field name at position %d", errs.ErrParseFailure, p.pos)
		}

		p.skipWhitespace()
		if p.peek() != '=' {
			return Insertion{}, fmt.Errorf("%w: expected '=' at position %d", errs.ErrParseFailure, p.pos)
		}
		p.pos++
		p.skipWhitespace()

		val, ok := p.parseValue()
		if !ok {
			return Insertion{}, fmt.Errorf("%w: expected boolean or float value at position %d", errs.ErrParseFailure, p.pos)
		}

		ins.Fields = append(ins.Fields, field)
		ins.Values = append(ins.Values, val)
	}

	if len(ins.Fields) == 0 {
		return Insertion{}, fmt.Errorf("%w: insert requires at least one field=value pair at position %d", errs.ErrParseFailure, p.pos)
	}

	p.skipWhitespace()
	if !p.eof() {
		ts, ok := p.parseTimestamp()
		if !ok {
			return Insertion{}, fmt.Errorf("%w: trailing garbage at position %d", errs.ErrParseFailure, p.pos)
		}

		ins.Time = ts
	} else {
		ins.Time = nowTimestamp()
	}

	return ins, nil
}
