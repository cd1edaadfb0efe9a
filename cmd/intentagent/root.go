package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tbxark/intentagent/config"
)

var (
	configPath string
	conf       *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "intentagent",
	Short:         "Intent router and slot-filling assistant for ERP chat",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		conf = c
		slog.SetLogLoggerLevel(c.SlogLevel())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (yaml or json)")
	rootCmd.AddCommand(serveCmd, chatCmd, catalogCmd)
}
