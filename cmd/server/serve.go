package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitease/internal/auth"
	"github.com/mmynk/splitease/internal/config"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/service"
	"github.com/mmynk/splitease/internal/storage"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("Using the default JWT secret; set JWT_SECRET in production")
	}
	if cfg.SeedDemo {
		if err := service.SeedDemoUser(ctx, store); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newHandler assembles the Connect services, health and metrics endpoints.
func newHandler(cfg *config.Config, store storage.Store) http.Handler {
	deps := service.Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWT:           auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Logger:        slog.Default(),
	}
	if cfg.Auth.LoginRateLimit > 0 {
		deps.LoginLimiter = middleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)
	}

	mux := http.NewServeMux()
	service.Mount(mux, deps)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthz(store))

	// h2c serves HTTP/2 without TLS, which gRPC-protocol clients require.
	return h2c.NewHandler(middleware.HTTPLogging(middleware.CORS(mux)), &http2.Server{})
}

func healthz(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := store.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
