package main

import (
	"fmt"
	"os"

	"workorder-approval/internal/config"
	"workorder-approval/internal/infrastructure/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "workorder-api",
		Short:         "Contractor work order approval service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "optional config file (yaml, json, toml, env); environment variables take precedence")

	root.AddCommand(newServeCmd(a), newMigrateCmd(a), newTokenCmd(a))
	return root
}
