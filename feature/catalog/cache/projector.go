package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/core/storage"
	"storefront/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogKey is the cache table key holding the denormalized catalog blob.
const CatalogKey = "catalog:index"

// SnapshotObject is the object name the blob is mirrored to for the CDN.
const SnapshotObject = "cache/catalog.json"

// Blob is the denormalized read-optimized snapshot of the full catalog.
// It is overwritten wholesale on every successful projection and is allowed
// to be stale between writes.
type Blob struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Products    []models.Product `json:"products"`
}

// Projector keeps the cache blob consistent with the products table.
// Projection is best-effort: the reconciliation engine scopes it in a
// savepoint so a failure here never unwinds a committed stock change, and a
// later successful projection self-heals the entry.
type Projector struct {
	logger *zap.Logger
	store  storage.Client
	bucket string
	mirror bool
	sf     singleflight.Group
}

// NewProjector creates a cache projector. store may be nil when snapshot
// mirroring is disabled.
func NewProjector(logger *zap.Logger, store storage.Client, bucket string, mirror bool) *Projector {
	return &Projector{
		logger: logger,
		store:  store,
		bucket: bucket,
		mirror: mirror && store != nil,
	}
}

// Project rebuilds the catalog blob from the products table and overwrites
// the cache entry. It runs on whatever handle it is given, so the engine can
// scope it inside a savepoint of the reconciliation transaction.
func (p *Projector) Project(tx *gorm.DB) error {
	var products []models.Product
	if err := tx.Order("id").Find(&products).Error; err != nil {
		return fmt.Errorf("failed to load products for projection: %w", err)
	}

	blob := Blob{
		GeneratedAt: time.Now().UTC(),
		Products:    products,
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to encode catalog blob: %w", err)
	}

	entry := models.CacheEntry{
		Key:       CatalogKey,
		Value:     string(raw),
		UpdatedAt: time.Now().UTC(),
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Get returns the current catalog blob, rebuilding the entry read-through on
// a miss. Concurrent misses collapse into a single rebuild via singleflight.
func (p *Projector) Get(ctx context.Context, db *gorm.DB) (*Blob, error) {
	var entry models.CacheEntry
	err := db.WithContext(ctx).First(&entry, "cache_key = ?", CatalogKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, err, _ = p.sf.Do(CatalogKey, func() (any, error) {
			return nil, db.WithContext(ctx).Transaction(p.Project)
		})
		if err != nil {
			return nil, err
		}
		err = db.WithContext(ctx).First(&entry, "cache_key = ?", CatalogKey).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var blob Blob
	if err := json.Unmarshal([]byte(entry.Value), &blob); err != nil {
		return nil, fmt.Errorf("cache entry is corrupt: %w", err)
	}
	return &blob, nil
}

// Mirror uploads the current cache entry to object storage so a CDN can
// serve the catalog without touching the database. Strictly best-effort:
// failures are logged and dropped.
func (p *Projector) Mirror(ctx context.Context, db *gorm.DB) {
	if !p.mirror {
		return
	}

	var entry models.CacheEntry
	if err := db.WithContext(ctx).First(&entry, "cache_key = ?", CatalogKey).Error; err != nil {
		p.logger.Warn("Snapshot mirror skipped, no cache entry", zap.Error(err))
		return
	}

	raw := []byte(entry.Value)
	_, err := p.store.PutObject(ctx, p.bucket, SnapshotObject,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		p.logger.Warn("Snapshot mirror failed", zap.Error(err))
		return
	}
	p.logger.Debug("Catalog snapshot mirrored", zap.Int("bytes", len(raw)))
}
