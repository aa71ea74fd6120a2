// Package app implements the main application commands.
package app

import (
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/logger"
)

var (
	configPath string // directory holding main.toml
	envFile    string // optional dotenv file loaded before the config

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "cashglitch",
		Short: "CashGlitch serves the CashGlitch content site and admin dashboard",
		Long: `CashGlitch serves the public content API of the CashGlitch site
(blog, categories, sweepstakes, site pages) and a small admin dashboard.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory containing main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the dotenv file, the configuration and sets up logging.
func loadConfig() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "failed to load env file")
	}

	c, err := config.ReadConfig(configPath)
	if err != nil {
		return err
	}

	cfg = c

	if cfg.Log.AppName == "" {
		return nil
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	log.Debug().Str("config", configPath).Msg("configuration loaded")

	return nil
}
