package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapLookuper map[string]string

func (m mapLookuper) LookupEnv(key string) (string, bool) {
	val, ok := m[key]
	return val, ok
}

func TestExpand(t *testing.T) {
	env := mapLookuper{
		"HOME":  "/root",
		"A":     "alpha",
		"A_1":   "underscore",
		"_x":    "leading",
		"DOLLR": "$HOME",
	}

	cases := map[string]struct {
		line     string
		expected string
	}{
		"no-refs":           {"ls -l /tmp", "ls -l /tmp"},
		"simple":            {"cd $HOME", "cd /root"},
		"repeated":          {"$A $A$A", "alpha alphaalpha"},
		"maximal":           {"$A_1", "underscore"},
		"leading-under":     {"$_x", "leading"},
		"unset":             {"echo $UNSET_X", "echo "},
		"unset-maximal":     {"$Ab", ""},
		"bare-dollar":       {"echo $", "echo $"},
		"dollar-digit":      {"cost $5", "cost $5"},
		"dollar-brace":      {"${HOME}", "${HOME}"},
		"no-recursion":      {"$DOLLR", "$HOME"},
		"suffix":            {"$HOME/bin", "/root/bin"},
		"adjacent-operator": {"echo $A|cat", "echo alpha|cat"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(tc.line, env))
		})
	}
}

func TestExpand_idempotentWithoutRefs(t *testing.T) {
	env := mapLookuper{"A": "alpha"}
	for _, line := range []string{"", "plain text", "a | b > c &", "price: 5$"} {
		once := Expand(line, env)
		assert.Equal(t, line, once)
		assert.Equal(t, once, Expand(once, env))
	}
}

func ExampleExpand() {
	env := mapLookuper{"USER": "gopher"}

	fmt.Println(Expand("echo hello $USER, $MISSING$", env))

	// Output: echo hello gopher, $
}
