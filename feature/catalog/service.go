package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/core/utils"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound indicates a product id that does not exist locally.
var ErrNotFound = errors.New("product not found")

// Service handles catalog read operations and operator tooling.
type Service struct {
	db        *gorm.DB
	projector *cache.Projector
	logger    *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, projector *cache.Projector, logger *zap.Logger) *Service {
	return &Service{db: db, projector: projector, logger: logger}
}

// Catalog returns the denormalized catalog blob, rebuilding it on a miss.
// Storefront reads come from here, never from the products table directly.
func (s *Service) Catalog(ctx context.Context) (*cache.Blob, error) {
	return s.projector.Get(ctx, s.db)
}

// ProductDetail is a product with its optional enrichment metadata.
type ProductDetail struct {
	models.Product
	Meta *models.ProductMeta `json:"meta,omitempty"`
}

// Product returns one product with enrichment metadata when present.
func (s *Service) Product(ctx context.Context, id string) (*ProductDetail, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	detail := &ProductDetail{Product: product}

	var meta models.ProductMeta
	err = s.db.WithContext(ctx).First(&meta, "product_id = ?", id).Error
	if err == nil {
		detail.Meta = &meta
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// Enrichment is additive; a broken meta read does not fail the
		// product lookup.
		s.logger.Warn("Failed to load product meta", zap.String("product_id", id), zap.Error(err))
	}

	return detail, nil
}

// Rebuild forces a full cache projection. Operator tooling after incidents.
func (s *Service) Rebuild(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(s.projector.Project)
}

// ProductCount returns the number of products for command output.
func (s *Service) ProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// DriftReport describes where the cache blob disagrees with the products
// table. Drift between writes is expected; persistent drift means the
// projector is failing and the cache is not self-healing.
type DriftReport struct {
	CheckedAt      time.Time `json:"checked_at"`
	CacheUpdatedAt time.Time `json:"cache_updated_at"`
	// Missing lists product ids absent from the cache blob.
	Missing []string `json:"missing"`
	// Stale describes per-field mismatches, e.g. "p1: stock cache=3 db=7".
	Stale []string `json:"stale"`
	// Orphaned lists blob entries with no product row.
	Orphaned []string `json:"orphaned"`
	InSync   bool     `json:"in_sync"`
}

// Drift compares the current cache entry against the products table.
// The blob is decoded leniently (a corrupt or hand-edited entry is exactly
// what this check exists to find), so field comparisons go through tolerant
// conversions.
func (s *Service) Drift(ctx context.Context) (*DriftReport, error) {
	report := &DriftReport{
		CheckedAt: time.Now().UTC(),
		Missing:   []string{},
		Stale:     []string{},
		Orphaned:  []string{},
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var entry models.CacheEntry
	err := s.db.WithContext(ctx).First(&entry, "cache_key = ?", cache.CatalogKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		for _, p := range products {
			report.Missing = append(report.Missing, p.ID)
		}
		report.InSync = len(products) == 0
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	report.CacheUpdatedAt = entry.UpdatedAt

	cached, err := decodeBlobIndex(entry.Value)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		raw, ok := cached[p.ID]
		if !ok {
			report.Missing = append(report.Missing, p.ID)
			continue
		}
		if stock := utils.ToInt(raw["stock_count"]); stock != p.StockCount {
			report.Stale = append(report.Stale, fmt.Sprintf("%s: stock cache=%d db=%d", p.ID, stock, p.StockCount))
		}
		if price := utils.ToInt64(raw["price_cents"]); price != p.PriceCents {
			report.Stale = append(report.Stale, fmt.Sprintf("%s: price cache=%d db=%d", p.ID, price, p.PriceCents))
		}
		if name := utils.ToString(raw["name"]); name != p.Name {
			report.Stale = append(report.Stale, fmt.Sprintf("%s: name cache=%q db=%q", p.ID, name, p.Name))
		}
		delete(cached, p.ID)
	}
	for id := range cached {
		report.Orphaned = append(report.Orphaned, id)
	}

	report.InSync = len(report.Missing) == 0 && len(report.Stale) == 0 && len(report.Orphaned) == 0
	return report, nil
}

// decodeBlobIndex decodes the blob generically and indexes entries by id.
func decodeBlobIndex(value string) (map[string]map[string]any, error) {
	var blob struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal([]byte(value), &blob); err != nil {
		return nil, fmt.Errorf("cache entry is corrupt: %w", err)
	}

	index := make(map[string]map[string]any, len(blob.Products))
	for _, p := range blob.Products {
		id := utils.ToString(p["id"])
		if id != "" {
			index[id] = p
		}
	}
	return index, nil
}
