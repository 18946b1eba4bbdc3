// Package cli wires the scamviz commands: the two terminal viewers, the
// static asset host and the inspection commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/scamviz/internal/config"
	"github.com/tensorplex-labs/scamviz/internal/utils/logger"
)

type rootFlags struct {
	debug bool
	trace bool
	info  bool
}

// app is the state shared by every subcommand once the root pre-run ran.
type app struct {
	flags rootFlags
	cfg   *config.AppConfig
}

func (a *app) initLogger(opts logger.Options) {
	opts.Environment = a.cfg.Environment
	opts.Debug = a.flags.debug
	opts.Trace = a.flags.trace
	opts.Info = a.flags.info
	logger.Init(opts)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "scamviz",
		Short:         "scamviz - explore SCAM similarity results and compare model outputs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.initLogger(logger.Options{Output: cmd.ErrOrStderr()})
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.flags.trace, "trace", false, "enable trace logging")
	root.PersistentFlags().BoolVar(&a.flags.info, "info", false, "enable info logging")

	root.AddCommand(
		newExploreCmd(a),
		newGalleryCmd(a),
		newServeAssetsCmd(a),
		newInspectCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}
