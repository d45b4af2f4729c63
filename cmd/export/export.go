// Package export implements the export command, writing stored transactions
// to a CSV file.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"spendscribe/cmd/root"
	"spendscribe/internal/report"
	"spendscribe/internal/store"
)

var (
	output    string
	dateStart string
	dateEnd   string
	category  string
	delimiter string
)

// Cmd exports stored transactions as CSV.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a CSV file",
	Example: `  spendscribe export -o expenses.csv
  spendscribe export -o march.csv --date-start 2026-03-01 --date-end 2026-03-31
  spendscribe export -o food.csv --category food_drink`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "expenses.csv", "output CSV file")
	Cmd.Flags().StringVar(&dateStart, "date-start", "", "earliest date to include (yyyy-mm-dd)")
	Cmd.Flags().StringVar(&dateEnd, "date-end", "", "latest date to include (yyyy-mm-dd)")
	Cmd.Flags().StringVar(&category, "category", "", "only include this category")
	Cmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if delimiter != "," {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("delimiter must be a single character")
		}
		report.SetDelimiter(runes[0])
	}

	filter := store.Filter{Category: category}
	if dateStart != "" {
		t, err := time.Parse("2006-01-02", dateStart)
		if err != nil {
			return fmt.Errorf("invalid --date-start: %w", err)
		}
		filter.DateStart = &t
	}
	if dateEnd != "" {
		t, err := time.Parse("2006-01-02", dateEnd)
		if err != nil {
			return fmt.Errorf("invalid --date-end: %w", err)
		}
		filter.DateEnd = &t
	}

	client, err := store.Connect(ctx, root.Cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	coll := client.Database(root.Cfg.Mongo.Database).Collection(root.Cfg.Mongo.Collection)
	txStore := store.NewTransactionStore(coll, root.Logger)

	txs, err := txStore.List(ctx, filter)
	if err != nil {
		return err
	}
	if err := report.WriteTransactionsCSV(txs, output, root.Logger); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), output)
	return nil
}
