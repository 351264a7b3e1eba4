package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cmdconfig "github.com/synnergy-labs/asset-runtime/cmd/config"
)

func main() {
	logger := logrus.New()
	var env string

	rootCmd := &cobra.Command{
		Use:   "synnergy",
		Short: "asset-runtime command line surface",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmdconfig.LoadConfig(env)
			level, err := logrus.ParseLevel(cmdconfig.AppConfig.Logging.Level)
			if err != nil {
				level = logrus.InfoLevel
			}
			logger.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "configuration environment overlay (e.g. \"bootstrap\")")
	rootCmd.AddCommand(manifestCmd())
	rootCmd.AddCommand(poolCmd())
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
