package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

type stubClient struct {
	classifyErr   error
	category      string
	classifyCalls int
}

func (s *stubClient) Classify(_ context.Context, _ string) (ClassificationResponse, error) {
	s.classifyCalls++
	if s.classifyErr != nil {
		return ClassificationResponse{}, s.classifyErr
	}
	return ClassificationResponse{Category: s.category}, nil
}

func (s *stubClient) Generate(_ context.Context, _ string) (GenerationResponse, error) {
	return GenerationResponse{}, errors.New("not implemented")
}

func testClassifier(t *testing.T, client Client) *Classifier {
	t.Helper()
	classifier := NewClassifierWithClient(client, Config{
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		CacheTTL:   time.Minute,
		RateLimit:  100000,
	}, nil)
	t.Cleanup(classifier.Close)
	return classifier
}

func TestClassifier_UsesModelAnswer(t *testing.T) {
	client := &stubClient{category: "Groceries"}
	classifier := testClassifier(t, client)

	got := classifier.ClassifyTransaction(context.Background(), "CORNER STORE 42")

	assert.Equal(t, model.CategoryGroceries, got)
	assert.Equal(t, 1, client.classifyCalls)
}

func TestClassifier_CoercesUnknownLabels(t *testing.T) {
	client := &stubClient{category: "Cryptocurrency"}
	classifier := testClassifier(t, client)

	got := classifier.ClassifyTransaction(context.Background(), "SOME MERCHANT")

	assert.Equal(t, model.CategoryOthers, got)
}

func TestClassifier_FallsBackToOthersOnError(t *testing.T) {
	client := &stubClient{classifyErr: errors.New("provider unavailable")}
	classifier := testClassifier(t, client)

	got := classifier.ClassifyTransaction(context.Background(), "SOME MERCHANT")

	assert.Equal(t, model.CategoryOthers, got)
}

func TestClassifier_EmptyDescription(t *testing.T) {
	client := &stubClient{category: "Groceries"}
	classifier := testClassifier(t, client)

	got := classifier.ClassifyTransaction(context.Background(), "   ")

	assert.Equal(t, model.CategoryOthers, got)
	assert.Equal(t, 0, client.classifyCalls)
}

func TestClassifier_CachesResults(t *testing.T) {
	client := &stubClient{category: "Fuel"}
	classifier := testClassifier(t, client)

	first := classifier.ClassifyTransaction(context.Background(), "HIGHWAY STOP")
	second := classifier.ClassifyTransaction(context.Background(), "highway stop")

	assert.Equal(t, model.CategoryFuel, first)
	assert.Equal(t, model.CategoryFuel, second)
	assert.Equal(t, 1, client.classifyCalls, "second lookup should hit the cache")
}

func TestClassifier_RuleFastPathSkipsModel(t *testing.T) {
	client := &stubClient{category: "Others"}
	classifier := testClassifier(t, client)

	got := classifier.ClassifyTransaction(context.Background(), "UPI-SWIGGY BANGALORE")

	assert.Equal(t, model.CategoryFoodDining, got)
	assert.Equal(t, 0, client.classifyCalls, "known merchants should never reach the model")
}

func TestRuleMatcher_Match(t *testing.T) {
	matcher, err := newRuleMatcher(defaultRules())
	require.NoError(t, err)

	tests := []struct {
		name        string
		description string
		want        model.Category
		matched     bool
	}{
		{name: "food delivery", description: "ZOMATO ORDER 9871", want: model.CategoryFoodDining, matched: true},
		{name: "case insensitive", description: "payment to bigbasket", want: model.CategoryGroceries, matched: true},
		{name: "atm withdrawal", description: "ATM WDL 004512", want: model.CategoryCashWithdrawal, matched: true},
		{name: "online shopping", description: "AMAZON PAY INDIA", want: model.CategoryOnlineShopping, matched: true},
		{name: "streaming", description: "NETFLIX.COM SUBSCRIPTION", want: model.CategoryEntertainment, matched: true},
		{name: "unknown merchant", description: "JOES WIDGETS", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matcher.match(tt.description)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRuleMatcher_PriorityOrder(t *testing.T) {
	matcher, err := newRuleMatcher([]rule{
		{Name: "broad", Regex: `\bSTORE\b`, Category: model.CategoryShopping, Priority: 10},
		{Name: "narrow", Regex: `\bPHARMA\s*STORE\b`, Category: model.CategoryPharmacy, Priority: 90},
	})
	require.NoError(t, err)

	got, ok := matcher.match("PHARMA STORE 19")
	require.True(t, ok)
	assert.Equal(t, model.CategoryPharmacy, got)
}

func TestNewRuleMatcher_InvalidRegex(t *testing.T) {
	_, err := newRuleMatcher([]rule{{Name: "bad", Regex: `(`}})
	require.Error(t, err)
}
