package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spendscribe/internal/logging"
	"spendscribe/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Item:          "coffee",
			Cost:          4.5,
			Date:          time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC),
			CategoryFlags: models.FlagsFor(models.CategoryFoodDrink),
		},
		{
			Item:          "bus ticket",
			Cost:          3.25,
			Date:          time.Date(2024, time.March, 12, 12, 0, 0, 0, time.UTC),
			CategoryFlags: models.FlagsFor(models.CategoryTransportation),
		},
	}
}

func TestWriteTransactions(t *testing.T) {
	var sb strings.Builder
	assert.NoError(t, WriteTransactions(sampleTransactions(), &sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Date,Item,Cost,Category", lines[0])
	assert.Equal(t, "2024-03-13,coffee,4.50,food_drink", lines[1])
	assert.Equal(t, "2024-03-12,bus ticket,3.25,transportation", lines[2])
}

func TestWriteTransactionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	logger := &logging.MockLogger{}

	assert.NoError(t, WriteTransactionsCSV(sampleTransactions(), path, logger))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "coffee")
}

func TestWriteTransactionsEmpty(t *testing.T) {
	var sb strings.Builder
	assert.NoError(t, WriteTransactions(nil, &sb))
	assert.Equal(t, "Date,Item,Cost,Category", strings.TrimSpace(sb.String()))
}
