package cli

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/scamviz/internal/scoring"
	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print similarity data as JSON",
	}
	cmd.AddCommand(
		newInspectSummaryCmd(a),
		newInspectRowCmd(a),
		newInspectImageCmd(a),
		newInspectMeansCmd(a),
	)
	return cmd
}

type datasetSummary struct {
	Family  simdata.Family `json:"family"`
	Images  int            `json:"images"`
	Rows    int            `json:"rows"`
	Models  []string       `json:"models"`
	Columns []string       `json:"columns"`
}

func newInspectSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <family>",
		Short: "Print the size and column layout of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadOne(cmd, a, args[0])
			if err != nil {
				return err
			}
			meta := ds.Metadata()
			return printJSON(cmd, datasetSummary{
				Family:  ds.Family(),
				Images:  ds.Len(),
				Rows:    ds.Rows(),
				Models:  meta.Models,
				Columns: meta.Columns,
			})
		},
	}
}

func newInspectRowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "row <family> <row>",
		Short: "Print every column of one matrix row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row must be an integer: %w", err)
			}
			ds, err := loadOne(cmd, a, args[0])
			if err != nil {
				return err
			}
			sims, err := ds.SimilaritiesForRow(row)
			if err != nil {
				return err
			}
			return printJSON(cmd, sims)
		},
	}
}

func newInspectImageCmd(a *app) *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "image <family> <image-id>",
		Short: "Print an image with the scores of its variants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadOne(cmd, a, args[0])
			if err != nil {
				return err
			}
			rec, err := ds.FindImageByID(args[1], model)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "restrict scores to one model")
	return cmd
}

func newInspectMeansCmd(a *app) *cobra.Command {
	var prompt int

	cmd := &cobra.Command{
		Use:   "means <family> <model>",
		Short: "Print mean certainties of a model per variant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadOne(cmd, a, args[0])
			if err != nil {
				return err
			}
			means := scoring.ComputeMeans(ds, args[1], prompt)
			if means == nil {
				return fmt.Errorf("%s dataset is empty", ds.Family())
			}
			return printJSON(cmd, means)
		},
	}
	cmd.Flags().IntVar(&prompt, "prompt", 0, "LVLM prompt index")
	return cmd
}

func loadOne(cmd *cobra.Command, a *app, family string) (*simdata.Dataset, error) {
	fam, err := parseFamily(family)
	if err != nil {
		return nil, err
	}
	data, err := loadFamilies(cmd.Context(), a.cfg, fam)
	if err != nil {
		return nil, err
	}
	return data.datasets[fam], nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
