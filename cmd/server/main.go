package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "knowledge-share-api",
		Short:   "Knowledge Share API - submit, review and discover team knowledge",
		Version: Version,
		// running without a subcommand starts the server
		RunE:         runServe,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default ./config.yaml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
