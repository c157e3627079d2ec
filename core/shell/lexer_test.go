package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		out = append(out, tok.Value)
	}
	return out
}

func TestLex(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected []string
	}{
		"empty":            {"", nil},
		"blank":            {" \t\r\n\v\f", nil},
		"single":           {"ls", []string{"ls"}},
		"args":             {"ls  -l\t/tmp", []string{"ls", "-l", "/tmp"}},
		"spaced-pipe":      {"a | b", []string{"a", "|", "b"}},
		"glued-pipe":       {"a|b", []string{"a", "|", "b"}},
		"or":               {"a||b", []string{"a", "||", "b"}},
		"triple-pipe":      {"a|||b", []string{"a", "||", "|", "b"}},
		"glued-redirect":   {"ls>out", []string{"ls", ">", "out"}},
		"append":           {"echo hi>>out", []string{"echo", "hi", ">>", "out"}},
		"input":            {"wc -l<in", []string{"wc", "-l", "<", "in"}},
		"background":       {"sleep 1&", []string{"sleep", "1", "&"}},
		"quotes-are-words": {`echo "a b"`, []string{"echo", `"a`, `b"`}},
		"dollar":           {"echo $", []string{"echo", "$"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, words(Lex(tc.line)))
		})
	}
}

func TestLex_kinds(t *testing.T) {
	tokens := Lex("a | b || c < d > e >> f &")

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []TokenKind{
		Word, Pipe, Word, Or, Word, RedirectIn, Word, RedirectOut, Word, AppendOut, Word, Background,
	}, kinds)
	assert.False(t, tokens[0].IsOperator())
	assert.True(t, tokens[1].IsOperator())
}

func ExampleLex() {
	for _, tok := range Lex("cat<in|sort>>out&") {
		fmt.Println(tok)
	}

	// Output: Word("cat")
	// RedirectIn("<")
	// Word("in")
	// Pipe("|")
	// Word("sort")
	// AppendOut(">>")
	// Word("out")
	// Background("&")
}
