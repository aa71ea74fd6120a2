// Package daemon wires database, content and web service into the running server.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/content"
	"github.com/CashGlitch/CashGlitch/internal/db"
	"github.com/CashGlitch/CashGlitch/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	defer d.close()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New opens the database, prepares the content tables and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	d := &Daemon{cfg: cfg, db: gdb}
	ini := content.New(gdb)

	if err = initialize(ini); err != nil {
		d.close()

		return nil, err
	}

	// rate limiter counters, shared between instances on mysql and postgres
	d.storage = db.NewStorage(cfg)

	d.webService, err = web.New(cfg, gdb, ini, d.storage)
	if err != nil {
		d.close()

		return nil, errors.Wrap(err, "failed to create web service")
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("environment", cfg.Environment).
		Bool("dev_mode", cfg.DevMode).
		Msg("daemon ready")

	return d, nil
}

func (d *Daemon) close() {
	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close limiter storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}
