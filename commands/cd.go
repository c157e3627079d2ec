package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephlewis42/psh/core/env"
)

const envOldPWD = "OLDPWD"

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "cd [DIR]",
		Short: "Change the shell working directory, DIR defaults to $HOME and - is $OLDPWD.",
	}

	return cmd.Run(s, args, func() int {
		var dir string
		switch rest := cmd.Flags().Args(); len(rest) {
		case 0:
			dir = s.Env.Getenv(env.Home)
			if dir == "" {
				dir = "/"
			}
		case 1:
			dir = rest[0]
			if dir == "-" {
				dir = s.Env.Getenv(envOldPWD)
				if dir == "" {
					fmt.Fprintln(s.Stderr(), "cd: OLDPWD not set")
					return 1
				}
				fmt.Fprintln(s.Stdout(), dir)
			}
		default:
			fmt.Fprintln(s.Stderr(), "cd: too many arguments")
			return 1
		}

		oldPwd, _ := os.Getwd()
		if err := os.Chdir(dir); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				err = pathErr.Err
			}
			fmt.Fprintf(s.Stderr(), "cd: %s: %v\n", dir, err)
			return 1
		}

		if oldPwd != "" {
			s.Env.Setenv(envOldPWD, oldPwd)
		}
		if wd, err := os.Getwd(); err == nil {
			s.Env.Setenv(env.PWD, wd)
		}
		return 0
	})
}

func init() {
	addBuiltin("cd", Cd)
}
