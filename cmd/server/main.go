package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/data"
	"github.com/DoyleJ11/lol-portal/internal/catalog"
	"github.com/DoyleJ11/lol-portal/internal/config"
	"github.com/DoyleJ11/lol-portal/internal/httpapi"
	"github.com/DoyleJ11/lol-portal/internal/hub"
	"github.com/DoyleJ11/lol-portal/internal/logging"
	"github.com/DoyleJ11/lol-portal/internal/storage"
	"github.com/DoyleJ11/lol-portal/internal/storage/postgres"
	"github.com/DoyleJ11/lol-portal/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, err := openSlot(cfg)
	if err != nil {
		return err
	}
	defer slot.Close()

	// Serve immediately; sections report loading until this finishes.
	lib := catalog.NewLibrary()
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
		defer cancel()
		if err := lib.Load(loadCtx, contentSource(cfg), logger); err != nil {
			logger.Warn("content loaded with errors", zap.Error(err))
			return
		}
		logger.Info("content loaded")
	}()

	h := hub.NewHub(ctx, hub.Deps{
		Library:      lib,
		Slot:         slot,
		FavoritesKey: cfg.FavoritesKey,
		IdleTimeout:  cfg.SessionIdle,
		Logger:       logger,
	})
	defer func() { h.Inbox() <- hub.ShutdownHub{} }()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.SetupRoutes(h, lib, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("storage", cfg.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openSlot(cfg config.Config) (storage.Slot, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN)
	case config.DriverMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}

func contentSource(cfg config.Config) catalog.Source {
	switch {
	case cfg.DataURL != "":
		return catalog.HTTPSource{BaseURL: cfg.DataURL, Client: &http.Client{Timeout: cfg.LoadTimeout}}
	case cfg.DataDir != "":
		return catalog.FSSource{FS: os.DirFS(cfg.DataDir)}
	}
	return catalog.FSSource{FS: data.FS}
}
