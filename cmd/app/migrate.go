package main

import (
	"context"
	"fmt"

	"devis/cmd"
	"devis/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd(loadConfig func() (cmd.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gormDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err = runMigrations(c.Context(), gormDB); err != nil {
				return err
			}
			log.Info("schema is up to date")
			return nil
		},
	}
}

func runMigrations(ctx context.Context, gormDB *gorm.DB) error {
	if err := postgres.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
