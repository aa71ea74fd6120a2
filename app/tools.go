package app

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/daemon"
	"github.com/CashGlitch/CashGlitch/internal/web/handler/access"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(initCmd, hashCodeCmd, configCmd)
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the content tables and seed default content",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := daemon.Initialize(&cfg); err != nil {
				return err
			}

			log.Info().Msg("content initialized")

			return nil
		},
	}

	hashCodeCmd = &cobra.Command{
		Use:   "hash-code <code>",
		Short: "Print the argon2id hash to use as Auth.AccessCodeHash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := access.HashCode(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)

			return err
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.DumpConfigJSON(&cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)
