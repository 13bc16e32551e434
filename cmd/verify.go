package cmd

import (
	"fmt"

	"restaurant-catalog-api/catalog"
	"restaurant-catalog-api/config"
	"restaurant-catalog-api/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyFix bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Rebuild keyword indexes and report drift",
	Long: "Recomputes every restaurant's keyword index from its name, description and dishes\n" +
		"and compares it with the stored one. Use --fix to overwrite drifted indexes.",
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyFix, "fix", false, "overwrite drifted keyword indexes")
}

func runVerify(cmd *cobra.Command, args []string) error {
	_, cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := config.OpenDB(cfg.Database, false)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	svc := catalog.New(store.New(db)).WithMaxRetries(cfg.Catalog.MaxRetries)
	drifts, err := svc.Verify(cmd.Context(), verifyFix)
	for _, d := range drifts {
		log.Warn("Keyword index drift",
			zap.Uint("restaurant_id", d.RestaurantID),
			zap.Any("stored", d.Stored),
			zap.Any("expected", d.Expected),
		)
	}
	if err != nil {
		return fmt.Errorf("verify keyword indexes: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d restaurant(s) with drifted keyword index\n", len(drifts))
	if len(drifts) > 0 && !verifyFix {
		return fmt.Errorf("found %d drifted keyword index(es), rerun with --fix", len(drifts))
	}
	return nil
}
