package lang

import (
	"strconv"
	"time"

	"github.com/Serdnad/rtdb/value"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// nowTimestamp resolves the current wall-clock time in nanoseconds since
// the Unix epoch, used when an insert statement omits its trailing
// timestamp.
func nowTimestamp() int64 { return time.Now().UnixNano() }

// parseTimestamp parses a ts := digits | "NOW()" token at the parser's
// current position.
func (p *parser) parseTimestamp() (int64, bool) {
	if p.pos+5 <= len(p.buf) && string(p.buf[p.pos:p.pos+5]) == "now()" {
		p.pos += 5

		return time.Now().UnixNano(), true
	}

	start := p.pos
	for !p.eof() && isDigit(p.buf[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}

	n, err := strconv.ParseInt(string(p.buf[start:p.pos]), 10, 64)
	if err != nil {
		p.pos = start

		return 0, false
	}

	return n, true
}

// consumeBoolLiteral consumes "true" or "false" at the current position, if
// present and not immediately followed by another identifier byte (so
// "truest" is not mistaken for "true").
func (p *parser) consumeBoolLiteral() (bool, bool) {
	for _, lit := range []struct {
		text string
		val  bool
	}{{"true", true}, {"false", false}} {
		if p.pos+len(lit.text) > len(p.buf) {
			continue
		}
		if string(p.buf[p.pos:p.pos+len(lit.text)]) != lit.text {
			continue
		}

		end := p.pos + len(lit.text)
		if end < len(p.buf) && isIdentByte(p.buf[end]) {
			continue
		}

		p.pos = end

		return lit.val, true
	}

	return false, false
}

// scanFloatPrefix returns the length of the longest valid float literal
// starting at b[0], or 0 if b does not start with one.
func scanFloatPrefix(b []byte) int {
	i, n := 0, len(b)
	if i < n && (b[i] == '+' || b[i] == '-') {
		i++
	}

	intStart := i
	for i < n && isDigit(b[i]) {
		i++
	}
	hasIntDigits := i > intStart

	hasFracDigits := false
	if i < n && b[i] == '.' {
		i++
		fracStart := i
		for i < n && isDigit(b[i]) {
			i++
		}
		hasFracDigits = i > fracStart
	}

	if !hasIntDigits && !hasFracDigits {
		return 0
	}

	if i < n && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < n && (b[j] == '+' || b[j] == '-') {
			j++
		}

		expStart := j
		for j < n && isDigit(b[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}

	return i
}

// parseValue parses value := "true" | "false" | float at the current
// position.
func (p *parser) parseValue() (value.DataValue, bool) {
	if b, ok := p.consumeBoolLiteral(); ok {
		return value.Bool(b), true
	}

	n := scanFloatPrefix(p.buf[p.pos:])
	if n == 0 {
		return value.DataValue{}, false
	}

	f, err := strconv.ParseFloat(string(p.buf[p.pos:p.pos+n]), 64)
	if err != nil {
		return value.DataValue{}, false
	}

	p.pos += n

	return value.Float(f), true
}
