package cmd

import (
	"context"
	"fmt"

	"storefront/feature/catalog"
	"storefront/feature/catalog/cache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd is the parent command for cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and repair the catalog cache",
}

// cacheRebuildCmd forces a full cache projection from the products table.
var cacheRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the catalog cache blob from the products table",
	Long: `Regenerates the denormalized catalog blob from the products table.
Use after a cache projection failure alert, or whenever the drift report
shows the cache disagreeing with the source of truth.`,
	RunE: runCacheRebuild,
}

// cacheDriftCmd prints where the cache disagrees with the products table.
var cacheDriftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Report drift between the cache blob and the products table",
	RunE:  runCacheDrift,
}

func init() {
	cacheCmd.AddCommand(cacheRebuildCmd)
	cacheCmd.AddCommand(cacheDriftCmd)
	RootCmd.AddCommand(cacheCmd)
}

func runCacheRebuild(cmd *cobra.Command, args []string) error {
	_, logg, db, err := operatorSetup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	projector := cache.NewProjector(logg, nil, "", false)
	service := catalog.NewService(db, projector, logg)

	if err := service.Rebuild(context.Background()); err != nil {
		return err
	}

	count, err := service.ProductCount(context.Background())
	if err != nil {
		return err
	}
	logg.Info("Cache rebuilt", zap.Int64("products", count))
	return nil
}

func runCacheDrift(cmd *cobra.Command, args []string) error {
	_, logg, db, err := operatorSetup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	projector := cache.NewProjector(logg, nil, "", false)
	service := catalog.NewService(db, projector, logg)

	report, err := service.Drift(context.Background())
	if err != nil {
		return err
	}

	if report.InSync {
		logg.Info("Cache is in sync with the products table")
		return nil
	}

	for _, id := range report.Missing {
		fmt.Printf("missing from cache: %s\n", id)
	}
	for _, line := range report.Stale {
		fmt.Printf("stale: %s\n", line)
	}
	for _, id := range report.Orphaned {
		fmt.Printf("orphaned cache entry: %s\n", id)
	}
	logg.Warn("Cache drift detected",
		zap.Int("missing", len(report.Missing)),
		zap.Int("stale", len(report.Stale)),
		zap.Int("orphaned", len(report.Orphaned)))
	return nil
}
