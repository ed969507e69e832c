package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/speech-coach/internal/httpapi"
	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(v, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

func runServe(v *viper.Viper, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.models.Close()

	if addr != "" {
		a.cfg.Server.Addr = addr
	}
	if err := ensureDirectories(a.cfg.Paths.Temp, a.cfg.Server.UploadDir); err != nil {
		return err
	}

	a.banner(ctx, "HTTP API")

	rep, err := a.newReporter(ctx, "", "", "")
	if err != nil {
		return err
	}

	// A per-request key only ever selects Groq; anything else keeps the
	// server's default reporter.
	factory := func(ctx context.Context, apiKey string) reporter.Reporter {
		creds := reporter.ResolveCredentials("", "", a.getenv)
		r := reporter.New(ctx, a.cfg.Report, reporter.ModeGroq, creds, a.log)
		if !r.Reconfigure(apiKey) {
			return rep
		}
		return r
	}

	srv := httpapi.New(a.cfg, a.newPipeline(rep), factory, a.log)

	a.log.Info(ctx, "Listening on %s (report provider: %s)", a.cfg.Server.Addr, rep.Provider())
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	if err := srv.Start(ctx); err != nil {
		a.log.Error(ctx, "Server error: %v", err)
		return err
	}
	a.log.Info(ctx, "Server stopped")
	return nil
}
