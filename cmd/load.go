package cmd

import (
	"context"

	"storefront/core/txn"
	"storefront/feature/catalog"
	"storefront/feature/catalog/cache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loadSeedFile string

// loadCmd performs the initial catalog load from a JSON seed file.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the initial catalog from a JSON seed file",
	Long: `Reads a JSON catalog file and creates the products it lists, each with
an initial-load inventory audit row. Products that already exist are skipped,
never overwritten. Finishes with a full cache projection.

Example:
  storefront load --file catalog_seed.json`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadSeedFile, "file", "", "Path to the seed file (defaults to server.seed_file)")
	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, logg, db, err := operatorSetup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	path := loadSeedFile
	if path == "" {
		path = cfg.Server.SeedFile
	}

	projector := cache.NewProjector(logg, nil, "", false)
	service := catalog.NewService(db, projector, logg)

	result, err := service.LoadSeed(context.Background(), txn.New(db), path)
	if err != nil {
		return err
	}

	logg.Info("Initial catalog load complete",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return nil
}
