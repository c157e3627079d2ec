package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
		`\e`, "\033", // escape
	)
)

func unescape(s string) string {
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	return unescapeReplace.Replace(s)
}

// Echo writes its arguments separated by spaces.
func Echo(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "echo [-ne] [ARG] ...",
		Short: "Display a line of text.",
	}

	opt := cmd.Flags()
	noNewline := opt.Bool('n', "do not output the trailing newline")
	escaped := opt.Bool('e', "interpret backslash escapes")

	return cmd.Run(s, args, func() int {
		w := s.Stdout()
		for i, arg := range opt.Args() {
			if i > 0 {
				fmt.Fprint(w, " ")
			}

			if *escaped {
				arg = unescape(arg)
			}

			fmt.Fprint(w, arg)
		}

		if !*noNewline {
			fmt.Fprintln(w)
		}

		return 0
	})
}

func init() {
	addBuiltin("echo", Echo)
}
