package main

import (
	"github.com/spf13/cobra"

	"github.com/tair/market/internal/app"
	"github.com/tair/market/pkg/database"
)

var seedOpts app.SeedOptions

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and fill the database with a demo catalog",
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

		_, err = app.SeedCatalog(cmd.Context(), db, seedOpts)
		return err
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOpts.SellerEmail, "seller-email", "seller@example.com", "email of the demo seller")
	seedCmd.Flags().StringVar(&seedOpts.SellerPassword, "seller-password", "secret123", "password of the demo seller")
	seedCmd.Flags().IntVar(&seedOpts.Products, "products", 25, "number of products to create")
}
