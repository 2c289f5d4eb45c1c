package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Extractor parses raw PDF statement bytes into transaction rows.
type Extractor interface {
	Extract(ctx context.Context, pdfBytes []byte) ([]model.Transaction, error)
}

// Result summarizes one completed statement upload.
type Result struct {
	UploadID string
	Count    int
}

// Service runs the statement upload pipeline: parse, categorize, persist.
type Service struct {
	pdf        Extractor
	ofx        service.TransactionSource
	classifier service.Classifier
	storage    service.Storage
	logger     *slog.Logger
	progressW  io.Writer
}

// NewService creates a new ingestion service. The OFX source and PDF
// extractor may each be nil; uploads of that format then fail with a clear
// error instead of at construction time.
func NewService(pdf Extractor, ofx service.TransactionSource, classifier service.Classifier, storage service.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pdf:        pdf,
		ofx:        ofx,
		classifier: classifier,
		storage:    storage,
		logger:     logger,
		progressW:  os.Stdout,
	}
}

// SetProgressWriter redirects progress bar output, primarily for tests.
func (s *Service) SetProgressWriter(w io.Writer) {
	s.progressW = w
}

// Upload ingests one statement file for a user: the rows are parsed from
// the file, stamped with a fresh upload ID, classified into the category
// taxonomy, and persisted. Duplicate rows (by hash) are skipped by the
// storage layer.
func (s *Service) Upload(ctx context.Context, userID, path string) (Result, error) {
	transactions, err := s.parse(ctx, path)
	if err != nil {
		return Result{}, err
	}
	if len(transactions) == 0 {
		return Result{}, fmt.Errorf("%w: %s", common.ErrNoStatement, filepath.Base(path))
	}

	uploadID := uuid.New().String()
	for i := range transactions {
		transactions[i].UploadID = uploadID
		if transactions[i].ID == "" {
			transactions[i].ID = fmt.Sprintf("%s-%d", uploadID, i+1)
		}
	}

	s.categorize(ctx, transactions)

	if err := s.storage.SaveTransactions(ctx, userID, transactions); err != nil {
		return Result{}, fmt.Errorf("failed to save transactions: %w", err)
	}

	s.logger.Info("Statement ingested",
		"upload_id", uploadID,
		"user_id", userID,
		"transactions", len(transactions))

	return Result{UploadID: uploadID, Count: len(transactions)}, nil
}

func (s *Service) parse(ctx context.Context, path string) ([]model.Transaction, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		if s.pdf == nil {
			return nil, fmt.Errorf("PDF ingestion requires a configured Gemini API key")
		}
		content, err := os.ReadFile(path) // #nosec G304 -- user-supplied statement path
		if err != nil {
			return nil, fmt.Errorf("failed to read statement: %w", err)
		}
		return s.pdf.Extract(ctx, content)
	case ".ofx", ".qfx":
		if s.ofx == nil {
			return nil, fmt.Errorf("OFX ingestion is not configured")
		}
		return s.ofx.Parse(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported statement format %q", ext)
	}
}

// categorize labels every row with the taxonomy classifier. Classification
// never fails a batch: unclassifiable rows land in Others.
func (s *Service) categorize(ctx context.Context, transactions []model.Transaction) {
	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetWriter(s.progressW),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(s.progressW); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	for i := range transactions {
		transactions[i].Category = s.classifier.ClassifyTransaction(ctx, transactions[i].Description)
		transactions[i].ResolveNature()
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
}
