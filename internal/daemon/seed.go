package daemon

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/db"
)

const initializeTimeout = 2 * time.Minute

// initialize creates the content tables and seeds the defaults before the first request.
func initialize(ini *content.Initializer) error {
	ctx, cancel := context.WithTimeout(context.Background(), initializeTimeout)
	defer cancel()

	start := time.Now()

	if err := ini.InitializeAll(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize content")
	}

	log.Info().Dur("took", time.Since(start)).Msg("content initialized")

	return nil
}

// Initialize opens the database of cfg, runs the content initializer once and closes the database.
func Initialize(cfg *config.Config) error {
	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return initialize(content.New(gdb))
}
