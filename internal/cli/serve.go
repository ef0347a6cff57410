package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpadapter "svw.info/powerline/internal/adapters/http"
)

type serveOptions struct {
	addr string
}

func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API serving levels, play sessions, hints and /metrics.

Examples:
  powerline serve
  powerline serve -c powerline.yaml --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func (a *App) serve(ctx context.Context, opts *serveOptions) error {
	rt, err := a.setup()
	if err != nil {
		return err
	}
	addr := rt.cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpadapter.NewRouter(httpadapter.New(rt.service, rt.cfg.Hint.DefaultDepth, rt.cfg.Hint.MaxDepth), rt.logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: rt.cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("listening", "addr", addr, "levels", rt.catalog.Total(), "hint_depth", rt.cfg.Hint.DefaultDepth)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Error("server error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
		rt.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
