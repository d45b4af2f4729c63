package expenseparse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"spendscribe/internal/dateparse"
	"spendscribe/internal/errs"
)

var ref = time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

func TestParseAtExtractsAmountAndItem(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount string
		wantItem   string
	}{
		{"dollar sign", "I spent $15 on lunch at a cafe", "15", "Lunch A Cafe"},
		{"paid verb with decimals", "paid 25.50 for groceries", "25.5", "Groceries"},
		{"bucks", "12 bucks parking", "12", "Parking"},
		{"dollars word", "spent 8 dollars on coffee", "8", "Coffee"},
		{"bare number leaves unknown item", "spent 9", "9", "Unknown Item"},
		{"dollar sign beats bare number", "lunch $12.50", "12.5", "Lunch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAt(tt.text, ref)
			assert.NoError(t, err)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantItem, got.Item)
		})
	}
}

func TestParseAtResolvesDateFromText(t *testing.T) {
	got, err := ParseAt("I spent $15 on lunch yesterday", ref)
	assert.NoError(t, err)
	assert.Equal(t, dateparse.Resolve("yesterday", ref), got.Date)

	got, err = ParseAt("$20 groceries", ref)
	assert.NoError(t, err)
	assert.Equal(t, dateparse.Resolve("", ref), got.Date, "no date phrase defaults to the reference day")
}

func TestParseAtRejectsMissingAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no number at all", "bought some stuff"},
		{"zero amount", "spent $0 on nothing"},
		{"empty text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAt(tt.text, ref)
			assert.Nil(t, got)
			var extractionErr *errs.ExtractionError
			assert.ErrorAs(t, err, &extractionErr)
		})
	}
}

func TestParseAtItemFromPhrasesWhenFillerEatsEverything(t *testing.T) {
	// "purchase" is itself a filler word, so stripping leaves nothing and the
	// item falls back to the "for <thing>" phrase in the raw text.
	got, err := ParseAt("paid $30 for purchase", ref)
	assert.NoError(t, err)
	assert.Equal(t, "Purchase", got.Item)
}

func TestCostValueRoundsToCents(t *testing.T) {
	got, err := ParseAt("paid 25.50 for groceries", ref)
	assert.NoError(t, err)
	assert.Equal(t, 25.5, got.CostValue())
}
