// Package categorize implements the categorize command.
package categorize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spendscribe/cmd/root"
	"spendscribe/internal/categorizer"
)

var itemFlag string

// Cmd categorizes one item with the offline keyword sets and prints the
// resulting flag set as JSON.
var Cmd = &cobra.Command{
	Use:   "categorize [item]",
	Short: "Categorize an expense item offline",
	Example: `  spendscribe categorize "coffee at starbucks"
  spendscribe categorize --item "uber to the airport"`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&itemFlag, "item", "", "item description to categorize")
}

func run(cmd *cobra.Command, args []string) error {
	item := itemFlag
	if item == "" {
		item = strings.Join(args, " ")
	}
	if strings.TrimSpace(item) == "" {
		return fmt.Errorf("no item given")
	}

	keywords := categorizer.NewKeywordCategorizerFromFile(root.Cfg.Categories.File, root.Logger)
	flags := keywords.Flags(item)

	data, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
