package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"habitme/internal/app"
	"habitme/internal/domain"
)

// StatsCmd prints the statistics JSON for the configured store.
type StatsCmd struct {
	At string `help:"Reference day (YYYY-MM-DD). Defaults to today."`
}

// Run computes statistics as of the end of the reference day.
func (c *StatsCmd) Run(cctx *Context) error {
	ctx := context.Background()
	loc, err := cctx.Config.Location()
	if err != nil {
		return err
	}
	at := time.Now()
	if c.At != "" {
		d, err := domain.ParseDay(c.At, loc)
		if err != nil {
			return err
		}
		at = domain.EndOfDay(d, loc)
	}

	store, err := OpenStore(ctx, cctx.Config)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	stats, err := app.NewStatsService(store, loc).GetAt(ctx, at)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
