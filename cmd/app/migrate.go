package main

import (
	"backoffice/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			if err = postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			a.logger.InfoContext(c.Context(), "database migrated")
			return nil
		},
	}
}
