package shell

import "regexp"

// tokenRegex matches operators first, then words. Words stop at whitespace
// or at the first operator character so "ls>out" lexes to three tokens.
var tokenRegex = regexp.MustCompile(`\|\||>>|[|<>&]|[^|<>& \t\n\v\f\r]+`)

// Lex splits a line into tokens. There is no quoting: quote characters are
// kept as part of the word they appear in.
func Lex(line string) []Token {
	var out []Token
	for _, match := range tokenRegex.FindAllString(line, -1) {
		out = append(out, newToken(match))
	}
	return out
}

func newToken(s string) Token {
	for _, op := range operators {
		if s == op.symbol {
			return Token{Kind: op.kind, Value: s}
		}
	}
	return Token{Kind: Word, Value: s}
}
