// Package report renders stored transactions as CSV for spreadsheet import.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"spendscribe/internal/logging"
	"spendscribe/internal/models"
)

type csvRow struct {
	Date     string `csv:"Date"`
	Item     string `csv:"Item"`
	Cost     string `csv:"Cost"`
	Category string `csv:"Category"`
}

// SetDelimiter changes the CSV field separator for subsequent writes.
func SetDelimiter(delimiter rune) {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = delimiter
		return gocsv.NewSafeCSVWriter(writer)
	})
}

// WriteTransactionsCSV writes the transactions to a CSV file at path.
func WriteTransactionsCSV(txs []models.Transaction, path string, logger logging.Logger) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteTransactions(txs, file); err != nil {
		return err
	}
	logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Info("Wrote transactions CSV")
	return nil
}

// WriteTransactions writes the transactions as CSV to w, header included.
func WriteTransactions(txs []models.Transaction, w io.Writer) error {
	rows := make([]csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, csvRow{
			Date:     tx.Date.Format("2006-01-02"),
			Item:     tx.Item,
			Cost:     fmt.Sprintf("%.2f", tx.Cost),
			Category: tx.Category(),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
