package minify

import "strings"

// startsNumber is the start test for a numeric literal at the cursor: a
// digit, a dot followed by a digit, or a sign followed by a digit or dot.
// A sign only starts a number after a delimiter, so U+10-1F continuations
// and expressions like a-1 stay intact. Digit and dot starts additionally
// require that the cursor is not continuing an identifier, a hex color, or
// a just-emitted class dot: #000, .grid-01, and ff0000 must pass through
// verbatim, not get their zeros rewritten.
func (s *scanner) startsNumber(c byte, afterSpace bool) bool {
	n := len(s.src)
	switch {
	case isDigit(c):
	case c == '.':
		if s.i+1 >= n || !isDigit(s.src[s.i+1]) {
			return false
		}
	case c == '+' || c == '-':
		if s.i+1 >= n {
			return false
		}
		next := s.src[s.i+1]
		if !isDigit(next) && next != '.' {
			return false
		}
		return afterSpace || s.last == 0 || delimitsNumber(s.last)
	default:
		return false
	}
	if afterSpace || s.last == 0 {
		return true
	}
	return !isIdent(s.last) && s.last != '#' && s.last != '.'
}

// delimitsNumber reports bytes after which a sign can begin a number.
func delimitsNumber(c byte) bool {
	switch c {
	case ':', ',', ';', '(', '{', '[', '!', '=', '>', '+', '-', '*', '/', '~':
		return true
	}
	return false
}

// scanNumber consumes the numeric literal at the cursor (optional sign,
// integer digits, optional fraction, optional unit or percent suffix) and
// appends its shortest equivalent spelling. It returns the first unconsumed
// position, or ok=false (cursor untouched, nothing emitted) when the start
// test was a false positive such as "+." with no digits at all.
func (s *scanner) scanNumber() (int, bool) {
	src, n := s.src, len(s.src)
	j := s.i
	neg := src[j] == '-'
	if src[j] == '+' || src[j] == '-' {
		j++
	}
	intStart := j
	for j < n && isDigit(src[j]) {
		j++
	}
	intPart := src[intStart:j]
	fracPart := ""
	if j+1 < n && src[j] == '.' && isDigit(src[j+1]) {
		k := j + 1
		for k < n && isDigit(src[k]) {
			k++
		}
		fracPart = src[j+1 : k]
		j = k
	}
	if intPart == "" && fracPart == "" {
		return 0, false
	}
	unitStart := j
	for j < n && (isLetter(src[j]) || src[j] == '%') {
		j++
	}
	unit := src[unitStart:j]

	if allZeros(intPart) && allZeros(fracPart) {
		// Zero drops its sign, fraction, and unit. The one exception is a
		// percentage right before a block: 0%{ is a keyframe selector, and
		// bare 0{ would collide with the block syntax.
		if unit == "%" && s.nextSignificant(j) == '{' {
			s.out.WriteString("0%")
			s.last = '%'
		} else {
			s.out.WriteByte('0')
			s.last = '0'
		}
		return j, true
	}

	var tok strings.Builder
	if neg {
		tok.WriteByte('-')
	}
	tok.WriteString(strings.TrimLeft(intPart, "0"))
	if frac := strings.TrimRight(fracPart, "0"); frac != "" {
		tok.WriteByte('.')
		tok.WriteString(frac)
	}
	tok.WriteString(unit)
	t := tok.String()
	s.out.WriteString(t)
	s.last = t[len(t)-1]
	return j, true
}

// allZeros reports whether the digit run is empty or entirely zeros.
func allZeros(digits string) bool {
	for i := 0; i < len(digits); i++ {
		if digits[i] != '0' {
			return false
		}
	}
	return true
}
