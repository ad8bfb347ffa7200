package main

import (
	"github.com/aretw0/virtualide/internal/cli"
	httpAdapter "github.com/aretw0/virtualide/pkg/adapters/http"
	"github.com/aretw0/virtualide/pkg/observability"
	"github.com/aretw0/virtualide/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves one-off replays, live sessions with Server-Sent Events and stored
recordings over a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		stores, err := cli.OpenStores(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		var metrics *observability.Metrics
		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if cfg.Server.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics = observability.NewMetrics("virtualide")
			if err := metrics.Register(reg); err != nil {
				return err
			}
			opts = append(opts, httpAdapter.WithMetrics(reg))
		}

		newIDE := cli.NewIDEFactory(logger, metrics)
		opts = append(opts,
			httpAdapter.WithIDEFactory(newIDE),
			httpAdapter.WithRecordingStore(stores.Recordings),
			httpAdapter.WithSessions(stores.SessionManager(cfg.Store,
				session.WithIDEFactory(newIDE),
				session.WithLogger(logger),
			)),
		)

		err = cli.ListenAndServe(ctx, cfg.Server.Addr, httpAdapter.NewHandler(opts...), logger)
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Server stopped", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
}
