// Package minify compacts stylesheet text into an equivalent, shorter form:
// comments and redundant whitespace are removed, trailing semicolons before a
// closing brace are dropped, and numeric literals are rewritten into their
// shortest spelling. The pass is purely lexical: it never builds a rule tree,
// never reorders or merges declarations, and never changes what the input means.
package minify

import "strings"

// minBufSize keeps tiny inputs from growing the output buffer mid-scan.
const minBufSize = 64

// Minify returns the minimized form of css. It is total over all inputs:
// malformed or already-invalid stylesheets are passed through best-effort,
// and the empty string is returned immediately without allocating.
func Minify(css string) string {
	if css == "" {
		return ""
	}
	s := scanner{src: css}
	s.out.Grow(max(len(css), minBufSize))
	s.run()
	return s.out.String()
}

// scanner is the per-call state record: one cursor over src, one output
// buffer, and the lexical mode flags. Nothing persists across calls.
type scanner struct {
	src string
	out strings.Builder

	i          int  // cursor into src
	quote      byte // active string quote, 0 while not in a string
	inComment  bool
	inCalc     bool // inside calc(...); calcDepth tracks its parens
	calcDepth  int
	inRange    bool // inside a U+... unicode-range token
	blockDepth int  // { } nesting, clamped at zero
	pending    bool // whitespace seen but not yet resolved into a space or nothing
	last       byte // last significant byte emitted or observed, 0 at start
}

func (s *scanner) run() {
	n := len(s.src)
	for s.i < n {
		c := s.src[s.i]
		switch {
		case s.inComment:
			if c == '*' && s.i+1 < n && s.src[s.i+1] == '/' {
				s.inComment = false
				s.i += 2
			} else {
				s.i++
			}
		case s.quote != 0:
			s.stringByte(c)
		case c == '/' && s.i+1 < n && s.src[s.i+1] == '*':
			s.inComment = true
			s.i += 2
		case isSpace(c):
			s.inRange = false
			s.pending = true
			s.i++
		default:
			if s.inRange && endsRange(c) {
				s.inRange = false
			}
			s.defaultByte(c)
		}
	}
}

// stringByte copies one byte of a quoted string. A backslash escapes the
// following byte unconditionally; escapes are copied through, never decoded.
// An unterminated string runs verbatim to the end of input.
func (s *scanner) stringByte(c byte) {
	s.out.WriteByte(c)
	if c == '\\' && s.i+1 < len(s.src) {
		next := s.src[s.i+1]
		s.out.WriteByte(next)
		s.last = next
		s.i += 2
		return
	}
	if c == s.quote {
		s.quote = 0
	}
	s.last = c
	s.i++
}

// defaultByte handles one byte in default mode: resolve pending whitespace,
// then recognize calc(, string openers, redundant semicolons, and numeric
// literals; everything else is copied through.
func (s *scanner) defaultByte(c byte) {
	afterSpace := s.pending
	if s.pending {
		if s.keepSpace(s.last, c) {
			s.out.WriteByte(' ')
		}
		s.pending = false
	}

	if s.startsCalc(c) {
		s.out.WriteString("calc(")
		if s.inCalc {
			s.calcDepth++ // nested calc( counts as an opening paren
		} else {
			s.inCalc = true
			s.calcDepth = 1
		}
		s.last = '('
		s.i += len("calc(")
		return
	}
	if c == '"' || c == '\'' {
		s.out.WriteByte(c)
		s.quote = c
		s.last = c
		s.i++
		return
	}

	switch c {
	case '{':
		s.blockDepth++
	case '}':
		if s.blockDepth > 0 {
			s.blockDepth--
		}
	case '(':
		if s.inCalc {
			s.calcDepth++
		}
	case ')':
		if s.inCalc {
			s.calcDepth--
			if s.calcDepth == 0 {
				s.inCalc = false
			}
		}
	}

	if c == ';' && s.nextSignificant(s.i+1) == '}' {
		s.i++ // a semicolon right before the block close is redundant
		return
	}
	if !s.inRange && s.startsNumber(c, afterSpace) {
		if next, ok := s.scanNumber(); ok {
			s.i = next
			return
		}
	}
	s.out.WriteByte(c)
	if (c == 'u' || c == 'U') && s.i+1 < len(s.src) && s.src[s.i+1] == '+' {
		s.inRange = true
	}
	s.last = c
	s.i++
}

// startsCalc reports whether src[i:] begins a case-insensitive calc( token
// that is not the tail of a longer identifier such as -moz-calc(.
func (s *scanner) startsCalc(c byte) bool {
	if c != 'c' && c != 'C' {
		return false
	}
	if s.i > 0 && isIdent(s.src[s.i-1]) {
		return false
	}
	rest := s.src[s.i:]
	return len(rest) >= 5 && strings.EqualFold(rest[:5], "calc(")
}

// nextSignificant returns the first byte at or after pos that is neither
// whitespace nor inside a comment, or 0 when none remains before end of input.
func (s *scanner) nextSignificant(pos int) byte {
	n := len(s.src)
	for pos < n {
		c := s.src[pos]
		if isSpace(c) {
			pos++
			continue
		}
		if c == '/' && pos+1 < n && s.src[pos+1] == '*' {
			end := strings.Index(s.src[pos+2:], "*/")
			if end < 0 {
				return 0
			}
			pos += 2 + end + 2
			continue
		}
		return c
	}
	return 0
}
