package ai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecodeParsedResult(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantAmount string
		wantItem   string
		wantErr    bool
	}{
		{"clean object", `{"amount": 15, "item": "lunch at cafe"}`, "15", "lunch at cafe", false},
		{"decimal amount", `{"amount": 25.50, "item": "groceries"}`, "25.5", "groceries", false},
		{
			"fenced object",
			"```json\n{\"amount\": 8, \"item\": \"coffee\"}\n```",
			"8", "coffee", false,
		},
		{"object inside prose", `Sure! Here you go: {"amount": 3.25, "item": "bus fare"} Hope that helps.`, "3.25", "bus fare", false},
		{"padded item is trimmed", `{"amount": 5, "item": "  tea  "}`, "5", "tea", false},
		{"no braces", "I could not parse that.", "", "", true},
		{"invalid json", `{"amount": oops}`, "", "", true},
		{"zero amount", `{"amount": 0, "item": "thing"}`, "", "", true},
		{"negative amount", `{"amount": -4, "item": "thing"}`, "", "", true},
		{"missing item", `{"amount": 12}`, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeParsedResult(tt.response)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantItem, got.Item)
		})
	}
}
