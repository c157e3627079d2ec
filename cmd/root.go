package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/psh/commands"
	"github.com/josephlewis42/psh/core/config"
	"github.com/josephlewis42/psh/core/logger"
	"github.com/josephlewis42/psh/core/signals"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	noConfig bool
	command  string

	// exitStatus is the status the process ends with once the command
	// finishes.
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// shellConfig loads the configuration, falling back to the built-in one if
// none exists.
func shellConfig() (*config.Configuration, error) {
	if noConfig {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return config.Default(), nil
	case err != nil:
		return nil, err
	default:
		return configuration, nil
	}
}

// openEventLog returns a logger writing to the configured event log and a
// function to close it.
func openEventLog(cfg *config.Configuration) (*logger.Logger, func(), error) {
	fd, err := cfg.OpenEventLog()
	if err != nil {
		return nil, nil, err
	}
	if fd == nil {
		return logger.NewNopLogger(), func() {}, nil
	}
	return logger.NewJsonLinesLogRecorder(fd), func() { fd.Close() }, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "psh",
	Short: "A small interactive shell",
	Long: `psh reads lines of input, expands $NAME variables and runs pipelines of
programs with file redirections and background jobs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := shellConfig()
		if err != nil {
			return err
		}

		eventLogger, closeLog, err := openEventLog(cfg)
		if err != nil {
			return err
		}
		defer closeLog()
		events := eventLogger.NewSession()

		sh := commands.NewShell(commands.Options{
			Config: cfg,
			Events: events,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		sh.Init()

		bridge := signals.Install(cmd.ErrOrStderr(), cfg.InterruptMessage, func() {
			events.Record(&logger.Interrupt{})
		})
		defer bridge.Stop()

		if cmd.Flags().Changed("command") {
			sh.RunCommand(cmd.Context(), command)
			exitStatus = sh.LastStatus()
			return nil
		}

		exitStatus = sh.RunInteractive(cmd.Context())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore the config file and use built-in defaults")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run a single line and exit with its status")
}
