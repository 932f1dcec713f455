package cli

import (
	"errors"

	"habitme/internal/adapter/postgres"
)

// MigrateCmd applies the PostgreSQL schema migrations and exits.
type MigrateCmd struct{}

// Run migrates DATABASE_URL to the latest schema version.
func (c *MigrateCmd) Run(cctx *Context) error {
	if cctx.Config.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if err := postgres.Migrate(cctx.Config.DatabaseURL); err != nil {
		return err
	}
	cctx.Log.Info("migrations applied")
	return nil
}
