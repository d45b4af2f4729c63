// Package parse implements the parse command, the offline parser on the
// command line.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spendscribe/cmd/root"
	"spendscribe/internal/categorizer"
	"spendscribe/internal/expenseparse"
)

// Cmd parses one expense utterance and prints the result as JSON.
var Cmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse an expense utterance offline",
	Example: `  spendscribe parse "I spent $15 on lunch yesterday"
  spendscribe parse "paid 25.50 for groceries"`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	parsed, err := expenseparse.Parse(text)
	if err != nil {
		return err
	}

	keywords := categorizer.NewKeywordCategorizerFromFile(root.Cfg.Categories.File, root.Logger)
	flags := keywords.Flags(parsed.Item)

	out := struct {
		Amount   float64 `json:"amount"`
		Item     string  `json:"item"`
		Date     string  `json:"date"`
		Category string  `json:"category"`
	}{
		Amount:   parsed.CostValue(),
		Item:     parsed.Item,
		Date:     parsed.Date.Format(time.RFC3339),
		Category: flags.Category(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
