package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/core/alert"
	"storefront/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrTimeout marks an enrichment attempt that lost the race against its
// timer.
var ErrTimeout = errors.New("enrichment lookup timed out")

// Dispatcher performs best-effort metadata enrichment for newly observed
// catalog items. It races the provider lookup against a fixed timer;
// whichever resolves first wins. Failure and timeout leave the product fully
// usable with its core fields, raise one alert, and are otherwise silent.
type Dispatcher struct {
	db       *gorm.DB
	provider Provider
	notifier alert.Notifier
	logger   *zap.Logger
	timeout  time.Duration
}

// NewDispatcher creates an enrichment dispatcher. provider may be nil when
// enrichment is not configured; Enrich then no-ops.
func NewDispatcher(db *gorm.DB, provider Provider, notifier alert.Notifier, logger *zap.Logger, cfg Config) *Dispatcher {
	timeout := time.Duration(cfg.TimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &Dispatcher{
		db:       db,
		provider: provider,
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
	}
}

// Enrich looks up and persists metadata for one product. It is called on a
// background goroutine for newly created products only; updates to existing
// items never re-enrich. rayID correlates logs and alerts with the webhook
// delivery that triggered the lookup.
func (d *Dispatcher) Enrich(ctx context.Context, product models.Product, rayID string) {
	if d.provider == nil {
		return
	}
	l := d.logger.With(zap.String("product_id", product.ID), zap.String("ray_id", rayID))

	// Results for this subject are cached by persisting them; a repeat
	// for the same product skips the network call entirely.
	var existing models.ProductMeta
	err := d.db.WithContext(ctx).First(&existing, "product_id = ?", product.ID).Error
	if err == nil {
		l.Debug("Enrichment already persisted, skipping lookup")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Warn("Enrichment pre-check failed", zap.Error(err))
		return
	}

	meta, err := d.lookup(ctx, product.Name)
	if err != nil {
		l.Warn("Enrichment skipped", zap.Error(err))
		d.notifier.Notify(ctx, alert.Message{
			Title:    "Metadata enrichment failed",
			Priority: alert.PriorityWarning,
			RayID:    rayID,
			Subject:  product.ID,
			Body:     fmt.Sprintf("lookup for %q: %v", product.Name, err),
			Action:   "item is live without enrichment; re-run lookup from admin tooling if needed",
		})
		return
	}

	record := models.ProductMeta{
		ProductID:   product.ID,
		ProviderID:  meta.ProviderID,
		Description: meta.Description,
		ImageURL:    meta.ImageURL,
		Vendor:      meta.Vendor,
	}
	if err := d.db.WithContext(ctx).Create(&record).Error; err != nil {
		l.Warn("Failed to persist enrichment", zap.Error(err))
		return
	}
	l.Info("Product enriched", zap.String("provider_id", meta.ProviderID))
}

// lookup races the provider against the configured timer. The losing lookup
// goroutine is abandoned with its context cancelled; it must never block the
// caller past the timeout.
func (d *Dispatcher) lookup(ctx context.Context, name string) (*Metadata, error) {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		meta *Metadata
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		meta, err := d.provider.LookupByName(lctx, name)
		ch <- outcome{meta: meta, err: err}
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.meta, out.err
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
