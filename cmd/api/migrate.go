package main

import (
	"github.com/sangkips/investify-receiving/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var skipSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and seed default data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.AutoMigrate(a.db); err != nil {
			return err
		}
		if skipSeed {
			return nil
		}
		return database.SeedDefaultData(a.db)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "Only migrate, do not seed roles, location and admin")
}
