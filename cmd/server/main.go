package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitease/internal/config"
	"github.com/mmynk/splitease/pkg/logging"
)

var (
	configPath string
	cfg        *config.Config

	rootCmd = &cobra.Command{
		Use:           "splitease",
		Short:         "Shared expense tracking server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SPLITEASE_CONFIG"), "path to a YAML config file")
	rootCmd.AddCommand(newServeCmd(), newBalancesCmd(), newMigrateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
