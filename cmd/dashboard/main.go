package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/hotelops-dashboard/internal/backend"
	"github.com/gravadigital/hotelops-dashboard/internal/config"
	"github.com/gravadigital/hotelops-dashboard/internal/dashboard"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
	"github.com/gravadigital/hotelops-dashboard/internal/server"
	"github.com/gravadigital/hotelops-dashboard/internal/session"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, err := storage.FromConfig(cfg)
	if err != nil {
		log.Fatal("Invalid preview store", "error", err)
	}
	previews, err := factory.CreateStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize preview store", "store", cfg.Preview.Store, "error", err)
	}

	client := backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.RequestTimeout,
	})

	manager, err := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Max, func() *dashboard.View {
		return dashboard.NewView(client, previews)
	})
	if err != nil {
		log.Fatal("Failed to initialize sessions", "error", err)
	}
	if cfg.Session.Secret == "" {
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	srv := server.New(cfg, manager, previews)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("Server stopped", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		log.Info("Server stopped")
	}
}
