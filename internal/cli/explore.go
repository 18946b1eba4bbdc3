package cli

import (
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/scamviz/internal/explorer"
	"github.com/tensorplex-labs/scamviz/internal/tui"
)

func newExploreCmd(a *app) *cobra.Command {
	logFile := defaultLogFile

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse similarity scores per image, model and prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newExplorer(cmd, a)
			if err != nil {
				return err
			}
			return runProgram(a, cmd, tui.NewExplorerModel(ctrl), logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", logFile, "file receiving logs while the viewer runs")
	return cmd
}

func newExplorer(cmd *cobra.Command, a *app) (*explorer.Controller, error) {
	data, err := loadFamilies(cmd.Context(), a.cfg, families...)
	if err != nil {
		return nil, err
	}
	return explorer.NewController(explorer.Config{
		InitialIndex:    a.cfg.InitialIndex,
		DefaultVLMModel: a.cfg.DefaultVLMModel,
		PromptCount:     a.cfg.PromptCount,
	}, data.datasets, data.properties)
}
