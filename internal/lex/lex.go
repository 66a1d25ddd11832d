// Package lex provides the fast single-pass numeric lexer the ASCII Irap
// codec runs over the whole values block: whitespace skipping, integer and
// float token parsing, and fixed/general float formatting. It allocates
// nothing per token on the decode path.
package lex

import "strconv"

// Kind identifies why a lex operation failed.
type Kind int

const (
	// NotInteger means no digit was found where an integer was expected.
	NotInteger Kind = iota
	// NotFloat means the token did not match the float grammar.
	NotFloat
	// EOF means the cursor was already at the end of the buffer.
	EOF
)

// Error reports a lexing failure at a specific byte offset.
type Error struct {
	Kind Kind
	Pos  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotInteger:
		return "not a digit"
	case NotFloat:
		return "float parsing error"
	default:
		return "unexpected end of file"
	}
}

// Cursor is a byte cursor over a fixed buffer, matching the (buf, pos, end)
// triple from the format spec; end is implicitly len(Buf).
type Cursor struct {
	Buf []byte
	Pos int
}

// NewCursor wraps buf for lexing, starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{Buf: buf}
}

// AtEnd reports whether the cursor has been consumed to the end of Buf.
func (c *Cursor) AtEnd() bool {
	return c.Pos >= len(c.Buf)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// SkipWS advances Pos past any run of ASCII whitespace. Idempotent: calling
// it again with Pos unchanged is a no-op.
func (c *Cursor) SkipWS() {
	for c.Pos < len(c.Buf) && isSpace(c.Buf[c.Pos]) {
		c.Pos++
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ReadInt parses an optional sign followed by one or more ASCII digits.
func (c *Cursor) ReadInt() (int64, error) {
	c.SkipWS()
	start := c.Pos
	if c.Pos >= len(c.Buf) {
		return 0, &Error{Kind: EOF, Pos: start}
	}

	pos := c.Pos
	if c.Buf[pos] == '+' || c.Buf[pos] == '-' {
		pos++
	}

	digitsStart := pos
	for pos < len(c.Buf) && isDigit(c.Buf[pos]) {
		pos++
	}
	if pos == digitsStart {
		return 0, &Error{Kind: NotInteger, Pos: start}
	}

	v, err := strconv.ParseInt(string(c.Buf[c.Pos:pos]), 10, 64)
	if err != nil {
		return 0, &Error{Kind: NotInteger, Pos: start}
	}
	c.Pos = pos
	return v, nil
}

// scanFloatToken scans the float grammar (sign, integer part, optional
// fractional part with a leading bare '.' allowed, optional exponent),
// returning the token's end position. It requires at least one digit
// somewhere in the token.
func scanFloatToken(buf []byte, start int) (end int, ok bool) {
	pos := start
	if pos < len(buf) && (buf[pos] == '+' || buf[pos] == '-') {
		pos++
	}

	sawDigit := false

	for pos < len(buf) && isDigit(buf[pos]) {
		pos++
		sawDigit = true
	}

	if pos < len(buf) && buf[pos] == '.' {
		pos++
		for pos < len(buf) && isDigit(buf[pos]) {
			pos++
			sawDigit = true
		}
	}

	if !sawDigit {
		return start, false
	}

	if pos < len(buf) && (buf[pos] == 'e' || buf[pos] == 'E') {
		expPos := pos + 1
		if expPos < len(buf) && (buf[expPos] == '+' || buf[expPos] == '-') {
			expPos++
		}
		digitsStart := expPos
		for expPos < len(buf) && isDigit(buf[expPos]) {
			expPos++
		}
		if expPos > digitsStart {
			pos = expPos
		}
	}

	return pos, true
}

// ReadF64 parses a decimal float token with correctly-rounded precision,
// equivalent to strtod.
func (c *Cursor) ReadF64() (float64, error) {
	c.SkipWS()
	start := c.Pos
	if c.Pos >= len(c.Buf) {
		return 0, &Error{Kind: EOF, Pos: start}
	}

	end, ok := scanFloatToken(c.Buf, start)
	if !ok {
		return 0, &Error{Kind: NotFloat, Pos: start}
	}

	v, err := strconv.ParseFloat(string(c.Buf[start:end]), 64)
	if err != nil {
		return 0, &Error{Kind: NotFloat, Pos: start}
	}
	c.Pos = end
	return v, nil
}

// ReadF32 parses a decimal float token and rounds the result to nearest-even
// float32.
func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadF64()
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// FormatF32Fixed appends x in "%.4f" form (round-half-to-even, exactly four
// fractional digits, no exponent, leading sign only when negative). x must
// not be NaN; the caller substitutes the sentinel before calling this.
func FormatF32Fixed(dst []byte, x float32) []byte {
	return strconv.AppendFloat(dst, float64(x), 'f', 4, 32)
}

// FormatF64General appends x as the shortest decimal representation that
// round-trips back to x exactly, for use on header fields.
func FormatF64General(dst []byte, x float64) []byte {
	return strconv.AppendFloat(dst, x, 'g', -1, 64)
}
