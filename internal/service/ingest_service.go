package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go-inventory-catalog/internal/event"
	"go-inventory-catalog/internal/ingest"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/repository"
)

type IngestService interface {
	// ImportFile ingests the CSV at path and removes the file before returning,
	// whatever the outcome.
	ImportFile(ctx context.Context, path string, by model.Principal) (*ingest.Report, error)
}

type ingestService struct {
	engine *ingest.Engine
	events event.Publisher
	log    *slog.Logger
}

func NewIngestService(store *repository.Store, events event.Publisher, log *slog.Logger) IngestService {
	log = logger(log)
	return &ingestService{
		engine: ingest.NewEngine(rowTransaction(store), log),
		events: events,
		log:    log,
	}
}

// rowTransaction gives every CSV row its own database transaction.
func rowTransaction(store *repository.Store) ingest.Atomic {
	return func(ctx context.Context, fn func(ingest.Stores) error) error {
		return store.Transaction(ctx, func(tx *repository.Store) error {
			return fn(ingest.Stores{Categories: tx.Categories, Products: tx.Products, Inventory: tx.Inventory})
		})
	}
}

func (s *ingestService) ImportFile(ctx context.Context, path string, by model.Principal) (*ingest.Report, error) {
	defer s.remove(path)

	start := time.Now()
	records, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.Run(ctx, records, by.Actor())
	if err != nil {
		return nil, fmt.Errorf("import csv: %w", err)
	}

	s.log.InfoContext(ctx, "csv processed",
		slog.Int("rows", len(records)),
		slog.Int("categories", report.Categories),
		slog.Int("products", report.Products),
		slog.Int("inventory", report.Inventory),
		slog.Int("failed", report.Failed()),
		slog.Duration("took", time.Since(start)),
	)
	notify(ctx, s.events, event.CSVImported, report, by,
		fmt.Sprintf("%s imported %d rows from CSV", actorName(by), len(records)))
	return report, nil
}

func (s *ingestService) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("remove uploaded csv", slog.String("path", path), slog.Any("error", err))
	}
}
