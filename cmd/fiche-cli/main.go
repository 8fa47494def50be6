package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fiche/pkg/config"
	"github.com/goliatone/go-fiche/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		configPath string
		logLevel   string
	)
	root := &cobra.Command{
		Use:           "fiche-cli",
		Short:         "Fill in and submit internship technical sheets",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err := logging.Configure(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(wizardCmd(a))
	root.AddCommand(levelsCmd(a))
	root.AddCommand(recapCmd(a))
	root.AddCommand(payloadCmd(a))
	root.AddCommand(devserverCmd(a))
	return root
}
