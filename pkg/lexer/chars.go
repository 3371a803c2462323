package lexer

// Pattern_White_Space classification. The set is stable across Unicode
// versions, so the table is hard-coded. Bit 1 covers U+0000..U+00FF,
// bit 2 covers U+2000..U+20FF; the two stragglers U+1680 and U+3000
// are special-cased in IsWhitespace.
var whitespaceMap = [256]uint8{
	2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 1, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 2,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func IsWhitespace(c rune) bool {
	if c == ' ' || (c >= 0x09 && c <= 0x0d) {
		return true
	}
	if c <= 0x7f {
		return false
	}
	switch c >> 8 {
	case 0x00:
		return whitespaceMap[c&0xff]&1 != 0
	case 0x16:
		return c == 0x1680
	case 0x20:
		return whitespaceMap[c&0xff]&2 != 0
	case 0x30:
		return c == 0x3000
	}
	return false
}

func IsIdentCont(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || IsDigit(c)
}

func IsDigit(c rune) bool { return c >= '0' && c <= '9' }

// IsExpected reports whether c could start or continue well-formed
// input; the lexer scans to the next expected character to delimit the
// span it reports for unrecognized input.
func IsExpected(c rune) bool {
	switch c {
	case ':', '=', '+', '-', '(', ')', ';', ',':
		return true
	}
	return IsIdentCont(c) || IsWhitespace(c)
}
