package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		name string
		c    rune
		want bool
	}{
		{"space", ' ', true},
		{"tab", '\t', true},
		{"newline", '\n', true},
		{"vertical tab", '\v', true},
		{"carriage return", '\r', true},
		{"next line", 0x0085, true},
		{"ogham space mark", 0x1680, true},
		{"line separator", 0x2028, true},
		{"paragraph separator", 0x2029, true},
		{"ideographic space", 0x3000, true},
		{"letter", 'a', false},
		{"digit", '7', false},
		{"underscore", '_', false},
		{"word joiner", 0x2060, false},
		{"zero width space", 0x200b, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWhitespace(tt.c))
		})
	}
}

func TestIsIdentCont(t *testing.T) {
	for _, c := range "azAZ09" {
		assert.True(t, IsIdentCont(c), "IsIdentCont(%q)", c)
	}
	for _, c := range "_-:= (" {
		assert.False(t, IsIdentCont(c), "IsIdentCont(%q)", c)
	}
}

func TestIsExpected(t *testing.T) {
	for _, c := range "abc123 \t:=+-();," {
		assert.True(t, IsExpected(c), "IsExpected(%q)", c)
	}
	for _, c := range "*@#$%&{}" {
		assert.False(t, IsExpected(c), "IsExpected(%q)", c)
	}
}
