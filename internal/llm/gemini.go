package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiClient implements the Client interface for the Gemini API.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
}

// newGeminiClient creates a new Gemini API client.
func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Classify sends a classification request to Gemini. The response is
// expected to be a bare category name.
func (c *geminiClient) Classify(ctx context.Context, prompt string) (ClassificationResponse, error) {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return ClassificationResponse{}, err
	}

	category := cleanMarkdownWrapper(text)
	if category == "" {
		return ClassificationResponse{}, fmt.Errorf("empty classification response")
	}

	return ClassificationResponse{Category: category}, nil
}

// Generate sends a free-text generation request to Gemini.
func (c *geminiClient) Generate(ctx context.Context, prompt string) (GenerationResponse, error) {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return GenerationResponse{}, err
	}

	return GenerationResponse{Text: text}, nil
}

func (c *geminiClient) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}
