package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/core/database"
	"storefront/core/txn"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.InventoryAudit{}, &models.CacheEntry{}, &models.ProductMeta{},
	))
	projector := cache.NewProjector(zap.NewNop(), nil, "", false)
	return NewService(db, projector, zap.NewNop()), db
}

func TestProductWithMeta(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair", PriceCents: 24900}).Error)
	require.NoError(t, db.Create(&models.ProductMeta{ProductID: "p1", Vendor: "Acme", Description: "A chair"}).Error)

	detail, err := svc.Product(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Armchair", detail.Name)
	require.NotNil(t, detail.Meta)
	assert.Equal(t, "Acme", detail.Meta.Vendor)
}

func TestProductWithoutMeta(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair"}).Error)

	detail, err := svc.Product(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, detail.Meta)
}

func TestProductNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Product(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDriftInSync(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair", PriceCents: 24900, StockCount: 3}).Error)
	require.NoError(t, svc.Rebuild(context.Background()))

	report, err := svc.Drift(context.Background())
	require.NoError(t, err)
	assert.True(t, report.InSync)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Stale)
	assert.Empty(t, report.Orphaned)
}

func TestDriftDetectsStaleAndMissing(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair", PriceCents: 24900, StockCount: 3}).Error)
	require.NoError(t, svc.Rebuild(context.Background()))

	// Mutate products behind the cache's back.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", "p1").Update("stock_count", 9).Error)
	require.NoError(t, db.Create(&models.Product{ID: "p2", Name: "Bookshelf"}).Error)

	report, err := svc.Drift(context.Background())
	require.NoError(t, err)
	assert.False(t, report.InSync)
	assert.Equal(t, []string{"p2"}, report.Missing)
	require.Len(t, report.Stale, 1)
	assert.Contains(t, report.Stale[0], "stock cache=3 db=9")
}

func TestDriftDetectsOrphaned(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair"}).Error)
	require.NoError(t, svc.Rebuild(context.Background()))
	require.NoError(t, db.Delete(&models.Product{}, "id = ?", "p1").Error)

	report, err := svc.Drift(context.Background())
	require.NoError(t, err)
	assert.False(t, report.InSync)
	assert.Equal(t, []string{"p1"}, report.Orphaned)
}

func TestDriftWithoutCacheEntry(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Armchair"}).Error)

	report, err := svc.Drift(context.Background())
	require.NoError(t, err)
	assert.False(t, report.InSync)
	assert.Equal(t, []string{"p1"}, report.Missing)
}

func writeSeedFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeed(t *testing.T) {
	svc, db := setupService(t)
	path := writeSeedFile(t, `[
		{"id": "p1", "name": "Armchair", "price_cents": 24900, "category": "furniture", "stock_count": 4},
		{"id": "p2", "name": "Bookshelf", "price_cents": 12900, "category": "furniture", "stock_count": 0}
	]`)

	result, err := svc.LoadSeed(context.Background(), txn.New(db), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 4, product.StockCount)

	var audits []models.InventoryAudit
	require.NoError(t, db.Where("product_id = ?", "p1").Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, 4, audits[0].QuantityChange)
	assert.Equal(t, models.ReasonInitialLoad, audits[0].Reason)

	// Seed load finishes with a projection.
	var count int64
	db.Model(&models.CacheEntry{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoadSeedSkipsExisting(t *testing.T) {
	svc, db := setupService(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Old Armchair", StockCount: 9}).Error)
	path := writeSeedFile(t, `[{"id": "p1", "name": "Armchair", "stock_count": 4}]`)

	result, err := svc.LoadSeed(context.Background(), txn.New(db), path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, "Old Armchair", product.Name, "existing products are never overwritten")
	assert.Equal(t, 9, product.StockCount)
}

func TestLoadSeedRejectsBadEntries(t *testing.T) {
	svc, db := setupService(t)
	path := writeSeedFile(t, `[
		{"id": "p1", "name": "Armchair", "stock_count": 4},
		{"id": "p2", "name": "Bookshelf", "stock_count": -1}
	]`)

	_, err := svc.LoadSeed(context.Background(), txn.New(db), path)
	require.Error(t, err)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 0, count, "a bad entry rolls back the whole load")
}
