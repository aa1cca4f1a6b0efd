package pos_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/core/alert"
	"storefront/core/database"
	"storefront/core/txn"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	catalogModels "storefront/feature/catalog/models"
	"storefront/feature/pos"
	"storefront/feature/pos/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recorder captures alert messages for assertions.
type recorder struct {
	mu       sync.Mutex
	messages []alert.Message
}

func (r *recorder) Notify(_ context.Context, msg alert.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) all() []alert.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]alert.Message(nil), r.messages...)
}

type failingProjector struct{ err error }

func (f failingProjector) Project(*gorm.DB) error { return f.err }

func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogModels.Product{}, &catalogModels.InventoryAudit{}, &catalogModels.CacheEntry{},
	))
	return db
}

func TestProcessAlertsOnceOnProjectionFailure(t *testing.T) {
	db := setupServiceDB(t)
	require.NoError(t, db.Create(&catalogModels.Product{ID: "p1", Name: "Armchair", StockCount: 2}).Error)

	logg := zap.NewNop()
	rec := &recorder{}
	engine := reconcile.New(txn.New(db), failingProjector{err: errors.New("cache table gone")}, logg)
	projector := cache.NewProjector(logg, nil, "", false)
	dispatcher := enrich.NewDispatcher(db, nil, rec, logg, enrich.Config{})
	svc := pos.NewService(pos.Config{}, db, engine, projector, dispatcher, rec, logg)

	body := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
		{"catalog_object_id":"p1","quantity":"9","state":"IN_STOCK"}}}}`)
	res, err := svc.Process(context.Background(), body, "ray-1")
	require.NoError(t, err, "projection failure must not fail the delivery")
	assert.True(t, res.Applied)

	// The stock change committed despite the projection failure.
	var product catalogModels.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 9, product.StockCount)

	msgs := rec.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, alert.PriorityWarning, msgs[0].Priority)
	assert.Equal(t, "ray-1", msgs[0].RayID)
	assert.Contains(t, msgs[0].Action, "cache rebuild")
}

func TestProcessAlertsCriticalOnReconcileFailure(t *testing.T) {
	// No tables migrated: every apply fails at persistence.
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	logg := zap.NewNop()
	rec := &recorder{}
	engine := reconcile.New(txn.New(db), failingProjector{}, logg)
	projector := cache.NewProjector(logg, nil, "", false)
	dispatcher := enrich.NewDispatcher(db, nil, rec, logg, enrich.Config{})
	svc := pos.NewService(pos.Config{}, db, engine, projector, dispatcher, rec, logg)

	body := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
		{"catalog_object_id":"p1","quantity":"9","state":"IN_STOCK"}}}}`)
	_, err = svc.Process(context.Background(), body, "ray-2")
	require.Error(t, err)

	msgs := rec.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, alert.PriorityCritical, msgs[0].Priority)
}

func TestSetStockRejectsNegative(t *testing.T) {
	db := setupServiceDB(t)
	logg := zap.NewNop()
	engine := reconcile.New(txn.New(db), cache.NewProjector(logg, nil, "", false), logg)
	svc := pos.NewService(pos.Config{}, db, engine, cache.NewProjector(logg, nil, "", false),
		enrich.NewDispatcher(db, nil, alert.Nop{}, logg, enrich.Config{}), alert.Nop{}, logg)

	_, err := svc.SetStock(context.Background(), "p1", -1, catalogModels.ReasonManualSync)
	assert.Error(t, err)
}
