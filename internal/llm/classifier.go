package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Classifier maps transaction descriptions onto the fixed category taxonomy
// using an LLM. It never fails a batch: any provider error or off-taxonomy
// answer is coerced to the Others category.
type Classifier struct {
	client      Client
	cache       *categoryCache
	rules       *ruleMatcher
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// NewClassifier creates a new LLM-backed transaction classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return NewClassifierWithClient(client, cfg, logger), nil
}

// NewClassifierWithClient creates a classifier over an existing client.
// Used by tests to inject a mock provider.
func NewClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	// Rules are compiled from literals, so a failure here is a programming
	// error; fall back to LLM-only classification rather than refusing to
	// start.
	rules, err := newRuleMatcher(defaultRules())
	if err != nil {
		logger.Warn("rule matcher unavailable", "error", err)
		rules = &ruleMatcher{}
	}

	return &Classifier{
		client:      client,
		cache:       newCategoryCache(cfg.CacheTTL),
		rules:       rules,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// ClassifyTransaction returns exactly one taxonomy label for a description.
// Failures and unrecognized answers degrade to Others rather than erroring.
func (c *Classifier) ClassifyTransaction(ctx context.Context, description string) model.Category {
	key := strings.ToLower(strings.TrimSpace(description))
	if key == "" {
		return model.CategoryOthers
	}

	if category, found := c.cache.get(key); found {
		c.logger.Debug("classification cache hit", "description", description)
		return category
	}

	if category, matched := c.rules.match(description); matched {
		c.logger.Debug("classification rule hit", "description", description, "category", category)
		c.cache.set(key, category)
		return category
	}

	prompt := c.buildPrompt(description)

	var response ClassificationResponse
	err := common.WithRetry(ctx, func() error {
		if waitErr := c.rateLimiter.wait(ctx); waitErr != nil {
			return waitErr
		}
		var classifyErr error
		response, classifyErr = c.client.Classify(ctx, prompt)
		return classifyErr
	}, c.retryOpts)

	if err != nil {
		c.logger.Warn("classification failed, falling back to Others",
			"description", description,
			"error", err)
		return model.CategoryOthers
	}

	category := model.Category(strings.TrimSpace(response.Category)).Normalize()
	c.cache.set(key, category)

	return category
}

// buildPrompt renders the single-transaction classification prompt.
func (c *Classifier) buildPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString("You are a financial transaction classifier.\n\n")
	sb.WriteString("Transaction description:\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", description))
	sb.WriteString("Choose ONLY ONE category from this list:\n")
	for _, category := range model.Categories() {
		sb.WriteString("- ")
		sb.WriteString(string(category))
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn ONLY the category name.\n")

	return sb.String()
}

// Close releases the classifier's background resources.
func (c *Classifier) Close() {
	c.cache.Close()
	c.rateLimiter.Close()
}
