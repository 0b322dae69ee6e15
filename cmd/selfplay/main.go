package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/farmersrice/lc0/internal/backend"
	"github.com/farmersrice/lc0/internal/logging"
	"github.com/farmersrice/lc0/internal/options"
	"github.com/farmersrice/lc0/internal/selfplay"
	"github.com/farmersrice/lc0/internal/uci"
)

var logLevelID = options.ID{
	Flag: "log-level",
	Help: "Diagnostic log level (debug, info, warn, error). Diagnostics go to stderr."}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfplay [flags]",
		Short: "Self-play tournament driver speaking a UCI-like line protocol",
		// The option parser owns the whole flag surface; all declared
		// parameters double as flags and --help comes from the parser.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}
}

func run(args []string) error {
	// Registration phase: every parameter is declared before anything
	// reads the store.
	var parser = options.NewParser()
	parser.AddString(logLevelID, "info")
	selfplay.PopulateOptions(parser)
	backend.PopulateOptions(parser)
	if err := parser.ProcessFlags(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var logger = logging.New(parser.Dict().GetString(logLevelID))
	defer logger.Sync()

	var out = uci.NewWriterOutput(os.Stdout)
	var loop = selfplay.NewLoop(parser, out, backend.Resolve, logger)
	defer loop.Close()
	return loop.Run(os.Stdin)
}
