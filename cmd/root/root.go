// Package root defines the root command and the shared setup every
// subcommand relies on.
package root

import (
	"github.com/spf13/cobra"

	"spendscribe/internal/config"
	"spendscribe/internal/logging"
)

// Cfg holds the loaded configuration, available to all subcommands after
// PersistentPreRunE has run.
var Cfg *config.Config

// Logger is the shared application logger.
var Logger logging.Logger

// Cmd is the root command for the spendscribe CLI.
var Cmd = &cobra.Command{
	Use:   "spendscribe",
	Short: "Voice and text driven personal expense tracker",
	Long: `spendscribe records expenses from natural-language utterances.

It parses amounts, items and relative dates from text, categorizes items
with keyword matching or a hosted model, stores transactions in MongoDB
and serves the whole workflow over a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		Cfg = cfg
		Logger = config.ConfigureLogging(cfg)
		return nil
	},
}
