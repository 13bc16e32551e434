package cmd

import (
	"fmt"

	"restaurant-catalog-api/config"
	"restaurant-catalog-api/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Restaurant catalog API",
	Long:  "Owner-managed restaurant catalogs with keyword search over restaurants and their dishes.",
	// serve is the default so a bare binary still starts the API
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(verifyCmd)
}

// bootstrap loads the config for ENV and builds the matching logger.
func bootstrap() (string, config.Config, *zap.Logger, error) {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return env, cfg, log, nil
}
