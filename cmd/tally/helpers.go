package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/advisor"
	"github.com/Veraticus/tally/internal/cfo"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/llm"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// createLLMClient builds the configured LLM provider client.
func createLLMClient() (llm.Client, error) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// createEngine wires the LLM-backed advisor into the analysis engine.
func createEngine() (*cfo.Engine, error) {
	client, err := createLLMClient()
	if err != nil {
		return nil, err
	}
	return cfo.New(advisor.New(client, slog.Default()), slog.Default()), nil
}

// createClassifier builds the taxonomy classifier from configuration.
func createClassifier() (*llm.Classifier, error) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := llm.NewClassifier(cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	return classifier, nil
}
