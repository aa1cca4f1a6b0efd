package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"storefront/core/txn"
	"storefront/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedProduct is one entry of the initial catalog file.
type SeedProduct struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	StockCount int    `json:"stock_count"`
}

// LoadResult summarizes a seed load for command output.
type LoadResult struct {
	Created int
	Skipped int
}

// LoadSeed reads a JSON catalog file and creates the products it lists.
// Existing ids are skipped, never overwritten; ongoing webhook reconciliation
// owns updates. Each created product gets an initial-load audit row and the
// cache projection runs once at the end, all in a single transaction.
func (s *Service) LoadSeed(ctx context.Context, gw *txn.Gateway, path string) (*LoadResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []SeedProduct
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	result := &LoadResult{}
	err = gw.Transaction(ctx, func(tx *gorm.DB) error {
		for _, seed := range seeds {
			if seed.ID == "" || seed.Name == "" {
				return fmt.Errorf("seed entry missing id or name: %+v", seed)
			}
			if seed.StockCount < 0 {
				return fmt.Errorf("seed entry %s has negative stock", seed.ID)
			}

			var existing models.Product
			findErr := tx.First(&existing, "id = ?", seed.ID).Error
			if findErr == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return findErr
			}

			product := models.Product{
				ID:         seed.ID,
				Name:       seed.Name,
				PriceCents: seed.PriceCents,
				Category:   seed.Category,
				StockCount: seed.StockCount,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", seed.ID, err)
			}

			audit := models.InventoryAudit{
				ProductID:      seed.ID,
				QuantityChange: seed.StockCount,
				Reason:         models.ReasonInitialLoad,
				Notes:          "initial catalog load",
			}
			if err := txn.WithTriggerSuppressed(tx, func(tx *gorm.DB) error {
				return tx.Create(&audit).Error
			}); err != nil {
				return fmt.Errorf("failed to write audit row for %s: %w", seed.ID, err)
			}
			result.Created++
		}

		return s.projector.Project(tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Catalog seed loaded",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.String("path", path))
	return result, nil
}
