package shell

import "fmt"

// TokenKind classifies a Token.
type TokenKind int

const (
	// Word is any run of non-operator, non-space characters.
	Word TokenKind = iota
	// Pipe is |
	Pipe
	// Or is ||, it's recognized by the lexer but has no meaning to the parser.
	Or
	// RedirectIn is <
	RedirectIn
	// RedirectOut is >
	RedirectOut
	// AppendOut is >>
	AppendOut
	// Background is &
	Background
)

var tokenKindNames = map[TokenKind]string{
	Word:        "Word",
	Pipe:        "Pipe",
	Or:          "Or",
	RedirectIn:  "RedirectIn",
	RedirectOut: "RedirectOut",
	AppendOut:   "AppendOut",
	Background:  "Background",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical unit of a line.
type Token struct {
	Kind  TokenKind
	Value string
}

// IsOperator returns true for everything but words.
func (t Token) IsOperator() bool {
	return t.Kind != Word
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}

// operators is ordered so longer symbols match first.
var operators = []struct {
	symbol string
	kind   TokenKind
}{
	{"||", Or},
	{">>", AppendOut},
	{"|", Pipe},
	{">", RedirectOut},
	{"<", RedirectIn},
	{"&", Background},
}
