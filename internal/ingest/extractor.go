// Package ingest turns uploaded bank statements into categorized,
// persisted transaction rows.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

const extractionPrompt = `You are a financial statement parser for PDF bank statements.

Task:
- Parse ALL transactions in the attached statement.
- Output STRICT JSON only (no comments, no trailing commas, no extra text).
- Output a JSON array of objects.

Each object must have these fields:
- "date": string, ISO format "YYYY-MM-DD"
- "description": string
- "amount": number (always positive)
- "type": string, "Debit" for money OUT, "Credit" for money IN
- "account_id": string or null

Rules:
- If the statement has separate "paid out" / "paid in" columns, use the column to set "type".
- If the account number cannot be determined, set "account_id" to null.

Return ONLY valid raw JSON.
Do NOT wrap the response in code fences.
Do NOT use ` + "```json" + ` or any Markdown.
Output must begin with "[" and end with "]".`

// extractedRow is the wire shape of one statement row as returned by the model.
type extractedRow struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Type        string   `json:"type"`
	AccountID   *string  `json:"account_id"`
}

// PDFExtractor parses PDF statements by sending them to Gemini and
// requesting a strict JSON rendition of the transaction table.
type PDFExtractor struct {
	client *genai.Client
	model  string
}

// NewPDFExtractor creates a Gemini-backed PDF statement extractor.
func NewPDFExtractor(apiKey, modelName string) (*PDFExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &PDFExtractor{client: client, model: modelName}, nil
}

// Extract sends the PDF bytes to the model and returns the parsed rows.
// Rows that fail boundary validation are rejected as a batch: a statement
// the model cannot read reliably should not be half-ingested.
func (e *PDFExtractor) Extract(ctx context.Context, pdfBytes []byte) ([]model.Transaction, error) {
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("empty PDF content")
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdfBytes,
					},
				},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract statement: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return parseRows(rawText)
}

// parseRows decodes the model's JSON output into transaction rows.
func parseRows(raw string) ([]model.Transaction, error) {
	clean := cleanModelJSON(raw)

	var rows []extractedRow
	if err := json.Unmarshal([]byte(clean), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statement rows: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		txn, err := convertRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

func convertRow(row extractedRow) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}
	if strings.TrimSpace(row.Description) == "" {
		return model.Transaction{}, fmt.Errorf("missing description")
	}
	if row.Amount <= 0 {
		return model.Transaction{}, fmt.Errorf("%w: %.2f", common.ErrInvalidAmount, row.Amount)
	}

	var txnType model.TransactionType
	switch strings.ToLower(strings.TrimSpace(row.Type)) {
	case "debit":
		txnType = model.TypeDebit
	case "credit":
		txnType = model.TypeCredit
	case "":
	default:
		// Unrecognized markers are kept verbatim; nature resolution
		// treats them as expenses.
		txnType = model.TransactionType(row.Type)
	}

	txn := model.Transaction{
		Date:        date,
		Description: strings.TrimSpace(row.Description),
		Amount:      model.Round2(row.Amount),
		Type:        txnType,
	}
	if row.AccountID != nil {
		txn.AccountID = *row.AccountID
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: keep only from the first '[' to the last ']'.
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
