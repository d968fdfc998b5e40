// pharmadesk-proxy serves the fixed /api prefix used in local development
// and forwards it to the configured backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/pharmadesk/pharmadesk/internal/app"
	"github.com/pharmadesk/pharmadesk/internal/platform/httpc"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pharmadesk-proxy: config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	target, err := httpc.ResolveBase(httpc.Config{
		BaseURL: cfg.BaseURL,
		Scheme:  cfg.APIScheme,
		Host:    cfg.APIHost,
		Port:    cfg.APIPort,
	})
	if err != nil {
		logger.Error("resolve backend", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:         cfg.ProxyAddr,
		Handler:      newRouter(cfg, logger, target),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("proxy listening",
		slog.String("addr", cfg.ProxyAddr),
		slog.String("backend", target.String()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("proxy failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRouter(cfg *app.Config, logger *slog.Logger, target *url.URL) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("proxy error", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "backend unreachable", http.StatusBadGateway)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(300, time.Minute))
	r.Use(secureMiddleware.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/api/*", http.StripPrefix("/api", proxy))
	return r
}
