package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registration form over HTTP",
	Long: `Serve the form page. Each visitor gets their own in-memory form,
identified by a session cookie and dropped after session_ttl of inactivity.
Submissions are forwarded to the registration endpoint.

Routes:
  GET  /             form page
  POST /             apply fields, then validate (action=validate) or submit
  GET  /api/state    form state as JSON
  POST /api/change   apply one field change
  POST /api/submit   submit the current values
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

Example:
  regform serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
	serveCmd.Flags().Duration("session-ttl", 0, "idle expiry of visitor sessions (overrides config)")
	serveCmd.Flags().Bool("secure-cookies", false, "mark the session cookie Secure (serve behind TLS)")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("session_ttl", serveCmd.Flags().Lookup("session-ttl"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(metrics.WithRegistry(reg))

	secure, _ := cmd.Flags().GetBool("secure-cookies")
	srv, err := server.New(rt.prepared, rt.registry, rt.client,
		server.WithLogger(rt.logger),
		server.WithMetrics(rec, reg),
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithSecureCookies(secure),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Addr)
}
