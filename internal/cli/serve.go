package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	adapthttp "habitme/internal/adapter/http"
	"habitme/internal/adapter/quotable"
	"habitme/internal/app"
)

// ServeCmd runs the HTTP API and serves the web app.
type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"10s"`
}

// Run blocks until SIGINT or SIGTERM, then drains the server.
func (c *ServeCmd) Run(cctx *Context) error {
	cfg, log := cctx.Config, cctx.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close failed", zap.Error(err))
		}
	}()
	log.Info("store ready", zap.String("store", cfg.Store), zap.String("timezone", loc.String()))

	srv := adapthttp.New(
		app.NewHabitService(store, loc),
		app.NewStatsService(store, loc),
		app.NewCalendarService(store, loc),
		app.NewQuoteService(quotable.New(cfg.QuoteURL, cfg.QuoteTimeout), log),
		adapthttp.Options{WebDir: cfg.WebDir, CORSOrigin: cfg.CORSOrigin, Logger: log},
	)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shCtx)
	})
	return g.Wait()
}
