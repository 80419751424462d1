package main

import (
	"workorder-approval/internal/adapter/repository/gormrepo"
	"workorder-approval/internal/infrastructure/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			gdb, err := db.OpenGorm(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: db.GormLogLevel(cfg.LogLevel)})
			if err != nil {
				return err
			}
			sqlDB, err := db.SQLDB(gdb)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := gormrepo.Migrate(gdb); err != nil {
				return err
			}
			a.log.Info().Str("driver", cfg.DBDriver).Int("tables", len(gormrepo.Models())).Msg("migrate: done")
			return nil
		},
	}
}
