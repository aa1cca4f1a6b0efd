package cmd

import (
	"context"
	"fmt"
	"strconv"

	"storefront/core/alert"
	"storefront/core/txn"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	"storefront/feature/catalog/models"
	"storefront/feature/pos"
	"storefront/feature/pos/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stockCmd is the parent command for manual stock operations.
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Manual stock operations",
}

// stockSetCmd sets a product's stock to an absolute count, with audit.
var stockSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set a product's stock count by hand",
	Long: `Sets a product's stock to an absolute count through the same
reconciliation path webhook events take, so the change is audited
(reason manual-sync) and the cache projection runs. Use when the POS
and the local store have diverged and a human has counted the shelf.`,
	Args: cobra.ExactArgs(2),
	RunE: runStockSet,
}

func init() {
	stockCmd.AddCommand(stockSetCmd)
	RootCmd.AddCommand(stockCmd)
}

func runStockSet(cmd *cobra.Command, args []string) error {
	productID := args[0]
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be an integer: %w", err)
	}

	cfg, logg, db, err := operatorSetup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	gw := txn.New(db)
	projector := cache.NewProjector(logg, nil, "", false)
	engine := reconcile.New(gw, projector, logg)
	notifier := alert.NewSink(cfg.Alert, logg)
	dispatcher := enrich.NewDispatcher(db, nil, notifier, logg, cfg.Enrich)

	service := pos.NewService(cfg.POS, db, engine, projector, dispatcher, notifier, logg)
	result, err := service.SetStock(context.Background(), productID, int64(quantity), models.ReasonManualSync)
	if err != nil {
		return err
	}

	if !result.Applied {
		logg.Warn("Stock not changed", zap.String("product_id", productID), zap.String("note", result.Note))
		return nil
	}
	logg.Info("Stock set",
		zap.String("product_id", productID),
		zap.Int("quantity", result.NewQuantity),
		zap.Int("change", result.QuantityChange))
	return nil
}
