package cfo

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisFixture(total float64, spending []model.CategoryAmount) model.ExpenseAnalysis {
	top3 := spending
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	return model.ExpenseAnalysis{
		TotalExpense:     total,
		CategorySpending: spending,
		Top3Categories:   top3,
	}
}

func TestComputeAlerts_CategoryOverspending(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// Shopping sits at exactly 40% (>35 fires); the others are exactly 30%
	// each, which is not over the threshold.
	analysis := analysisFixture(1000, []model.CategoryAmount{
		{Category: model.CategoryShopping, Amount: 400},
		{Category: model.CategoryRent, Amount: 300},
		{Category: model.CategoryTravel, Amount: 300},
	})

	alerts := engine.ComputeAlerts(context.Background(), analysis)
	require.Len(t, alerts, 1)

	assert.Equal(t, "A1", alerts[0].ID)
	assert.Equal(t, model.AlertCategoryOverspending, alerts[0].Type)
	assert.Equal(t, model.SeverityHigh, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Shopping")
	assert.Contains(t, alerts[0].Message, "40.0%")
	assert.Len(t, alerts[0].Recommendations, 2)
}

func TestComputeAlerts_ZeroTotal(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// Division is guarded: no percentage rule fires on a zero total.
	analysis := analysisFixture(0, []model.CategoryAmount{})

	alerts := engine.ComputeAlerts(context.Background(), analysis)
	assert.Empty(t, alerts)
}

func TestComputeAlerts_UncategorizedRisk(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	tests := []struct {
		name        string
		othersShare float64
		wantAlert   bool
	}{
		{name: "over threshold fires", othersShare: 260, wantAlert: true},
		{name: "exactly 25 percent does not fire", othersShare: 250, wantAlert: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analysisFixture(1000, []model.CategoryAmount{
				{Category: model.CategoryRent, Amount: 1000 - tt.othersShare},
				{Category: model.CategoryOthers, Amount: tt.othersShare},
			})

			alerts := engine.ComputeAlerts(context.Background(), analysis)

			var found bool
			for _, alert := range alerts {
				if alert.Type == model.AlertUncategorizedRisk {
					found = true
				}
			}
			assert.Equal(t, tt.wantAlert, found)
		})
	}
}

func TestComputeAlerts_HighTransactionValue(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	analysis := analysisFixture(1000, []model.CategoryAmount{
		{Category: model.CategoryRent, Amount: 1000},
	})
	analysis.AverageTransactionValue = 150

	alerts := engine.ComputeAlerts(context.Background(), analysis)
	for _, alert := range alerts {
		assert.NotEqual(t, model.AlertHighTransactionValue, alert.Type)
	}

	analysis.AverageTransactionValue = 150.01
	alerts = engine.ComputeAlerts(context.Background(), analysis)

	var found bool
	for _, alert := range alerts {
		if alert.Type == model.AlertHighTransactionValue {
			found = true
			assert.Equal(t, model.SeverityMedium, alert.Severity)
		}
	}
	assert.True(t, found)
}

func TestComputeAlerts_LargeOneTimeExpenseBoundary(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	analysis := analysisFixture(2000, []model.CategoryAmount{
		{Category: model.CategoryRent, Amount: 600},
		{Category: model.CategoryTravel, Amount: 500},
		{Category: model.CategoryGroceries, Amount: 450},
		{Category: model.CategoryShopping, Amount: 450},
	})

	// Exactly 500 does not trigger.
	analysis.HighestSingleExpense = &model.ExpenseRecord{Amount: 500, Category: model.CategoryTravel}
	alerts := engine.ComputeAlerts(context.Background(), analysis)
	for _, alert := range alerts {
		assert.NotEqual(t, model.AlertLargeOneTimeExpense, alert.Type)
	}

	analysis.HighestSingleExpense = &model.ExpenseRecord{Amount: 500.01, Category: model.CategoryTravel}
	alerts = engine.ComputeAlerts(context.Background(), analysis)

	var found bool
	for _, alert := range alerts {
		if alert.Type == model.AlertLargeOneTimeExpense {
			found = true
		}
	}
	assert.True(t, found)
}

func TestComputeAlerts_SequentialIDs(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// Rent at 50% trips overspending and concentration; 41 transactions
	// averaging over 150 trip the remaining value rules.
	analysis := analysisFixture(10000, []model.CategoryAmount{
		{Category: model.CategoryRent, Amount: 5000},
		{Category: model.CategoryOthers, Amount: 3000},
		{Category: model.CategoryGroceries, Amount: 2000},
	})
	analysis.ExpenseCount = 41
	analysis.AverageTransactionValue = 243.9
	analysis.HighestSingleExpense = &model.ExpenseRecord{Amount: 5000, Category: model.CategoryRent}

	alerts := engine.ComputeAlerts(context.Background(), analysis)
	require.Len(t, alerts, 6)

	wantTypes := []model.AlertType{
		model.AlertCategoryOverspending,
		model.AlertUncategorizedRisk,
		model.AlertHighTransactionValue,
		model.AlertConcentrationRisk,
		model.AlertFrequentSpending,
		model.AlertLargeOneTimeExpense,
	}
	for i, alert := range alerts {
		assert.Equal(t, wantTypes[i], alert.Type)
		assert.Equal(t, fmt.Sprintf("A%d", i+1), alert.ID)
		assert.Len(t, alert.Recommendations, 2)
	}
}

func TestComputeAlerts_FallbackIsolation(t *testing.T) {
	generator := NewMockGenerator()
	// Fail only the second enrichment call.
	generator.FailLinesCalls = map[int]bool{2: true}
	engine := New(generator, nil)

	analysis := analysisFixture(1000, []model.CategoryAmount{
		{Category: model.CategoryRent, Amount: 500},
		{Category: model.CategoryOthers, Amount: 300},
		{Category: model.CategoryGroceries, Amount: 200},
	})

	alerts := engine.ComputeAlerts(context.Background(), analysis)
	require.Len(t, alerts, 3)

	// First and third alerts keep generated text; only the second falls
	// back to the fixed placeholders.
	assert.NotEqual(t, []string{alertFallbackFirst, alertFallbackSecond}, alerts[0].Recommendations)
	assert.Equal(t, []string{alertFallbackFirst, alertFallbackSecond}, alerts[1].Recommendations)
	assert.NotEqual(t, []string{alertFallbackFirst, alertFallbackSecond}, alerts[2].Recommendations)
}
