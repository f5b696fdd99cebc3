// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron"

	"storefront/internal/infra/config"
	"storefront/internal/platform/di"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	container, err := di.NewContainer(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("[boot] di init failed: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      container.Handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Hourly sweep of expired password-reset codes. The store keeps at
	// most one code per user; the sweep only reclaims abandoned ones.
	sweeper := cron.New()
	_ = sweeper.AddFunc("@hourly", func() {
		sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		container.ResetUC.PurgeExpired(sweepCtx)
	})
	sweeper.Start()

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		sweeper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}

		if err := container.Close(); err != nil {
			log.Printf("[boot] container close error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}
	<-idleConnsClosed
}
