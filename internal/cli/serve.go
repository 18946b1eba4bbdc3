package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/scamviz/internal/assethost"
)

func newServeAssetsCmd(a *app) *cobra.Command {
	var (
		root string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve-assets",
		Short: "Serve the static asset tree over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &assethost.Config{
				Address:   a.cfg.Address,
				Port:      a.cfg.Port,
				BodyLimit: a.cfg.BodyLimit,
				Root:      a.cfg.AssetRoot,
			}
			if root != "" {
				cfg.Root = root
			}
			if port != 0 {
				cfg.Port = port
			}

			srv, err := assethost.NewServer(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "asset root (default $ASSET_ROOT)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default $ASSET_HOST_PORT)")
	return cmd
}
