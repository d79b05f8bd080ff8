package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/healthy-heart/internal/classifier"
	"github.com/Veraticus/healthy-heart/internal/config"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/storage"
	"github.com/spf13/viper"
)

// app bundles what most commands need. Close releases the database.
type app struct {
	cfg    *config.Config
	store  *storage.SQLiteStorage
	engine *engine.Engine
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initApp loads configuration, storage, and the classifier.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	riskClassifier, err := classifier.New(cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	slog.Debug("Application initialized",
		"database", store.Path(),
		"classifier", cfg.Classifier.Provider)

	return &app{
		cfg:    cfg,
		store:  store,
		engine: engine.New(store, riskClassifier),
	}, nil
}
