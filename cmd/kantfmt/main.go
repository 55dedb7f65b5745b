// Package main is the entry point for kantfmt.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/donaldgifford/kantfmt/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the exit code.
func execute(args []string) int {
	code := runner.ExitOK
	root := newRootCmd(&code)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		// cobra has already printed the error and usage.
		return runner.ExitError
	}
	return code
}

func newRootCmd(code *int) *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "kantfmt [flags] [dumps...]",
		Short: "Lint and format Kotlin syntax tree dumps",
		Long: `kantfmt runs the kantis formatting rules over Kotlin syntax tree dumps.
With no files, it reads a dump from stdin. Without a mode flag it lints.`,
		Version:      fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts.Files = args
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			opts.Logger = logger
			*code = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	cmd.SetVersionTemplate("kantfmt {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVar(&opts.Check, "check", false, "exit 1 if any file is not formatted")
	flags.BoolVar(&opts.Diff, "diff", false, "print unified diff of changes")
	flags.BoolVarP(&opts.Format, "format", "F", false, "print the formatted source")
	flags.BoolVarP(&opts.Write, "write", "w", false, "write result to the dump's source file")
	flags.BoolVar(&opts.JSON, "json", false, "print violations as JSON")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print files as they are processed")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newRulesCmd())
	return cmd
}

// newLogger builds the process logger. Production logs only errors; verbose
// switches to the development logger at debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	return cfg.Build()
}
