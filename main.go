// spendscribe is a voice and text driven personal expense tracker.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"spendscribe/cmd/categorize"
	"spendscribe/cmd/export"
	"spendscribe/cmd/parse"
	"spendscribe/cmd/root"
	"spendscribe/cmd/serve"
)

func init() {
	loadEnvSilently()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads variables from a .env file when one exists. Missing
// files are normal in production where the environment is set externally.
func loadEnvSilently() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
