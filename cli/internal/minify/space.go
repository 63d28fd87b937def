package minify

// keepSpace decides whether the single space a whitespace run collapsed to
// must be emitted between last and next. Clause order matters; see the
// package tests for the case each clause protects.
func (s *scanner) keepSpace(last, next byte) bool {
	if last == 0 || last == ';' {
		return false
	}
	// Inside calc(), +/- are operators: 1+-1 and 1 + -1 differ.
	if s.inCalc && (last == '+' || last == '-' || next == '+' || next == '-') {
		return true
	}
	if s.noSpaceAfter(last) || s.noSpaceBefore(next) {
		return false
	}
	if s.blockDepth == 0 {
		// Selector context: a descendant combinator is nothing but the space.
		return true
	}
	if isIdent(last) && (isIdent(next) || next == '#') {
		return true
	}
	return endsValue(last) && startsValue(next)
}

// noSpaceAfter reports bytes that never need a trailing space. A colon only
// qualifies inside a block: in a selector, "a :hover" and "a:hover" differ.
func (s *scanner) noSpaceAfter(c byte) bool {
	switch c {
	case ',', '(', '[', '{', '}', '>', '+', '~', '=':
		return true
	case ':':
		return s.blockDepth > 0
	}
	return false
}

// noSpaceBefore reports bytes that never need a leading space.
func (s *scanner) noSpaceBefore(c byte) bool {
	switch c {
	case ',', ';', ')', ']', '}', '{', '>', '+', '~', '=':
		return true
	case ':':
		return s.blockDepth > 0
	}
	return false
}

// isSpace matches the whitespace bytes the scanner collapses.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// isIdent reports identifier-like bytes: letters, digits, _, -, the escape
// backslash, and any byte >= 0x80 so multi-byte runes pass through whole.
func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '\\' || c >= 0x80
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// endsValue reports bytes that can end a value token in a declaration.
func endsValue(c byte) bool {
	if isLetter(c) || isDigit(c) || c >= 0x80 {
		return true
	}
	switch c {
	case '%', ')', ']', '"', '\'', '.', '#':
		return true
	}
	return false
}

// startsValue reports bytes that can start a new value token in a declaration.
func startsValue(c byte) bool {
	if isLetter(c) || isDigit(c) || c >= 0x80 {
		return true
	}
	switch c {
	case '.', '-', '+', '#', '"', '\'':
		return true
	}
	return false
}

// endsRange reports bytes that terminate a U+... unicode-range token.
// Whitespace terminates one too; the scanner loop handles that directly.
func endsRange(c byte) bool {
	switch c {
	case ',', ';', ')', '{', '}':
		return true
	}
	return false
}
