package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/wcdash/internal/adapters/http/api"
	"github.com/okian/wcdash/internal/adapters/http/site"
	"github.com/okian/wcdash/internal/adapters/http/swagger"
	"github.com/okian/wcdash/internal/adapters/source"
	app "github.com/okian/wcdash/internal/app"
	"github.com/okian/wcdash/internal/config"
	"github.com/okian/wcdash/internal/domain/dedupe"
	"github.com/okian/wcdash/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log, nil); err != nil {
		log.Error(ctx, "dashboard failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run loads the dataset and then serves HTTP until ctx is cancelled. A
// startup failure is returned before anything listens. When ready is
// non-nil it receives the bound address once the listener is open.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, ready chan<- string) error {
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("load finals: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	log.Info(ctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
	if ready != nil {
		ready <- ln.Addr().String()
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(shutdownCtx, "server stopped")
	return nil
}

// newService builds the dashboard service from configuration.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	policy, err := dedupe.ParsePolicy(cfg.DuplicateYears)
	if err != nil {
		return nil, err
	}
	fetcher := source.New(
		source.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		source.WithUserAgent(cfg.UserAgent),
		source.WithLogger(log.Named("source")),
	)
	return app.New(
		app.WithFetcher(fetcher),
		app.WithSource(cfg.SourceURL, cfg.TableMarker),
		app.WithLegacyNames(cfg.LegacyNames),
		app.WithDuplicatePolicy(policy),
		app.WithLogger(log),
	), nil
}

// newMux registers the dashboard page, API docs and JSON API.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}
