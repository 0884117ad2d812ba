package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/technova/careers-api/config"
	httpx "github.com/technova/careers-api/internal/http"
	"github.com/technova/careers-api/internal/observability/metrics"
)

const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 30 * time.Second
	serverIdleTimeout  = 120 * time.Second
)

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
	// Metrics instruments every request and mounts /metrics.
	Metrics bool
}

// buildHTTPHandler wraps the router with the cross-cutting middleware.
// Order, outermost first: Recover, Logging, Metrics, SecurityHeaders, CORS, Compression, router.
func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	services := cfg.Services
	if cfg.Metrics {
		services.Metrics = metrics.Handler()
	}
	if services.SubmitLimit.Limiter != nil && services.SubmitLimit.OnReject == nil {
		services.SubmitLimit.OnReject = func(r *http.Request) {
			metrics.RecordRateLimited(r.URL.Path)
		}
	}

	var h http.Handler = httpx.NewRouter(services)

	// Compression sits inside logging so the access log reports compressed sizes.
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{
			Level:   cfg.HTTP.CompressionLevel,
			MinSize: 1024,
			Logger:  cfg.Logger,
		})(h)
	}

	mw := []func(http.Handler) http.Handler{
		httpx.Recover(cfg.Logger),
		httpx.Logging(cfg.Logger),
	}
	if cfg.Metrics {
		mw = append(mw, metrics.InstrumentHandler)
	}
	mw = append(mw,
		httpx.SecurityHeaders(),
		httpx.CORS(httpx.CORSConfig{AllowedOrigins: cfg.HTTP.CORSAllowedOrigins}),
	)
	return httpx.Chain(h, mw...)
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       serverReadTimeout,
		ReadHeaderTimeout: serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}
}

// listen binds addr and caps concurrent connections when maxConns is positive.
func listen(ctx context.Context, addr string, maxConns int) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}
	return ln, nil
}

// serveHTTP serves on ln until ctx is done, then shuts the server down within shutdownTimeout.
func serveHTTP(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
