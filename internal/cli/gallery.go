package cli

import (
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/scamviz/internal/gallery"
	"github.com/tensorplex-labs/scamviz/internal/tui"
)

func newGalleryCmd(a *app) *cobra.Command {
	logFile := defaultLogFile
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Compare segmentation results of selected models side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				catalogPath = a.cfg.CatalogPath
			}
			c, err := gallery.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}

			var preloader gallery.Preloader = gallery.NoopPreloader{}
			if a.cfg.UsesHTTP() {
				preloader = gallery.NewHTTPPreloader(a.cfg.AssetBaseURL, a.cfg.ClientTimeout)
			}

			ctrl := gallery.NewController(c, gallery.NewMemorySurface(), preloader)
			return runProgram(a, cmd, tui.NewGalleryModel(cmd.Context(), ctrl), logFile)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "gallery catalog file (default $GALLERY_CATALOG)")
	cmd.Flags().StringVar(&logFile, "log-file", logFile, "file receiving logs while the viewer runs")
	return cmd
}
