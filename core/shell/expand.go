package shell

import "regexp"

var envRegex = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

// Lookuper resolves variable names.
type Lookuper interface {
	LookupEnv(key string) (string, bool)
}

// Expand replaces every $NAME in line with its value from env, unset names
// expand to the empty string. Text that isn't a reference, including a lone
// $, is copied through. Expansion is a single pass: values containing $ are
// not expanded again.
func Expand(line string, env Lookuper) string {
	return envRegex.ReplaceAllStringFunc(line, func(ref string) string {
		val, _ := env.LookupEnv(ref[1:])
		return val
	})
}
