// The entry point of kedit. It parses the command line, loads configuration,
// sets up logging and the terminal, and runs one editing session on the file
// given as the only argument.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mnkhoi/kedit/internal/config"
	"github.com/mnkhoi/kedit/internal/editor"
	"github.com/mnkhoi/kedit/internal/logger"
	"github.com/mnkhoi/kedit/internal/terminal"
	"github.com/mnkhoi/kedit/internal/view"
)

// Version info (set by ldflags)
var version = "dev"

const name = "kedit"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		showColors bool
	)

	cmd := &cobra.Command{
		Use:          name + " [file]",
		Short:        "A small modal terminal text editor",
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showColors {
				return terminal.PrintTheme(cmd.OutOrStdout())
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Flags(), configPath, path)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file path (default ~/.config/kedit/config.yaml)")
	flags.Bool("debug", false, "enable debug logging and treat terminal failures as fatal")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-path", "", "log file path (default ~/.config/kedit/kedit.log)")
	flags.BoolVar(&showColors, "colors", false, "print the color theme and exit")
	return cmd
}

// run owns the terminal for the whole session. Close is deferred right after
// Open so the terminal is restored on every way out, panics included.
func run(flags *pflag.FlagSet, configPath, path string) error {
	cfg, err := config.Load(config.Options{Path: configPath, Flags: flags})
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.LogLevel(), cfg.Log.LoggerOptions()); err != nil {
		return err
	}
	defer logger.Close()
	logger.Info("starting", "version", version, "file", path, "debug", cfg.Debug)

	term, err := terminal.Open()
	if err != nil {
		logger.Error("failed to open terminal", "error", err)
		return err
	}
	defer term.Close()

	ed, err := editor.New(term, term, editor.Options{
		Info:           view.Info{Name: name, Version: version},
		Debug:          cfg.Debug,
		MessageTimeout: cfg.Editor.MessageTimeout,
		StatusBar:      cfg.Editor.StatusBar,
		Title:          cfg.Editor.Title,
	})
	if err != nil {
		return err
	}
	if path != "" {
		ed.Open(path)
	}

	if err := ed.Run(); err != nil {
		logger.Error("session failed", "error", err)
		return err
	}
	return nil
}
