package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ingest"
	"github.com/Veraticus/tally/internal/ofx"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest a bank statement (PDF, OFX, or QFX)",
		Long: `Ingest a bank statement: every row is parsed, classified into the
spending taxonomy, and stored under a fresh upload ID.

Examples:
  # Ingest a PDF statement (parsed with Gemini)
  tally ingest ~/Downloads/march-statement.pdf

  # Ingest an OFX/QFX export
  tally ingest ~/Downloads/chase_march.qfx`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	classifier, err := createClassifier()
	if err != nil {
		return err
	}
	defer classifier.Close()

	var extractor ingest.Extractor
	if cfg, cfgErr := config.LoadLLMConfig(); cfgErr == nil && cfg.Provider == "gemini" {
		extractor, err = ingest.NewPDFExtractor(cfg.APIKey, viper.GetString("llm.extraction_model"))
		if err != nil {
			return err
		}
	} else {
		slog.Debug("PDF extraction unavailable without a gemini provider")
	}

	svc := ingest.NewService(extractor, ofx.NewParser(), classifier, store, slog.Default())

	result, err := svc.Upload(ctx, config.UserID(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Ingested %d transactions (upload %s)", result.Count, result.UploadID)))
	fmt.Println(cli.SubtleStyle.Render("Run 'tally analyze' to compute your expense breakdown."))
	return nil
}
