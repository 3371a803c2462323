package token

type Type int

const (
	EOF Type = iota
	Whitespace
	LineComment
	Begin
	End
	Read
	Write
	Ident
	IntLit
	LParen
	RParen
	Semi
	Comma
	Assign
	Plus
	Minus
	Unknown
)

var KeywordMap = map[string]Type{
	"begin": Begin,
	"end":   End,
	"read":  Read,
	"write": Write,
}

var typeStrings = map[Type]string{
	EOF:         "end of input",
	Whitespace:  "whitespace",
	LineComment: "comment",
	Begin:       "'begin'",
	End:         "'end'",
	Read:        "'read'",
	Write:       "'write'",
	Ident:       "identifier",
	IntLit:      "integer literal",
	LParen:      "'('",
	RParen:      "')'",
	Semi:        "';'",
	Comma:       "','",
	Assign:      "':='",
	Plus:        "'+'",
	Minus:       "'-'",
	Unknown:     "unknown character",
}

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return "invalid token"
}

// Trivia reports whether a token carries no syntax and is filtered out
// of the stream the parser sees.
func (t Type) Trivia() bool { return t == Whitespace || t == LineComment }

type Token struct {
	Type   Type
	Value  string
	Line   int
	Column int
	Len    int
}
