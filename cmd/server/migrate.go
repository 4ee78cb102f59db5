package main

import (
	"github.com/spf13/cobra"

	"github.com/yukikurage/knowledge-share-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		return database.Close()
	},
}
