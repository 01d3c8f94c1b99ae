package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schedsim/internal/api"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			h := api.NewHandler(api.Params{Config: cfg, CacheTTL: v.GetDuration("cache-ttl")})
			return api.Serve(ctx, v.GetString("addr"), h)
		},
	}
	cmd.Flags().String("addr", ":9095", "Listen address")
	cmd.Flags().Duration("cache-ttl", api.DefaultCacheTTL, "How long identical requests are served from cache")
	return cmd
}
