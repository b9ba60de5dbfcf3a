package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	httpAdapter "github.com/nvalerio/flowforge/pkg/adapters/http"
	redisAdapter "github.com/nvalerio/flowforge/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the JSON API: POST /api/generate, /api/validate, /api/refine,
plus /healthz and Prometheus /metrics. The refine endpoint requires a
synthesis collaborator and reports unavailable until one is wired in by an
embedding program.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger := newLogger(cmd)

		eng := newEngine(cmd)
		opts := []httpAdapter.ServiceOption{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithScorer(eng.Scorer),
		}
		if cfg.RedisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: cfg.RedisAddr})
			defer client.Close()
			logger.Info("redis reference library enabled", "addr", cfg.RedisAddr)
			opts = append(opts, httpAdapter.WithLibrary(redisAdapter.NewLibrary(client)))
		}

		service := httpAdapter.NewService(opts...)
		srv := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: service.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("flowforge API listening", "addr", cfg.ListenAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
