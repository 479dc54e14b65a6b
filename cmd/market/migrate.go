package main

import (
	"github.com/spf13/cobra"

	"github.com/tair/market/internal/app"
	"github.com/tair/market/pkg/database"
	"github.com/tair/market/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.NewGormConnection(cfg.DB)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := app.Migrate(db); err != nil {
			return err
		}

		logger.Logger.Info().Msg("Database migrated")
		return nil
	},
}
