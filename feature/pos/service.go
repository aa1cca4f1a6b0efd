package pos

import (
	"context"
	"fmt"
	"time"

	"storefront/core/alert"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	catalogModels "storefront/feature/catalog/models"
	"storefront/feature/pos/event"
	"storefront/feature/pos/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service processes verified webhook deliveries: parse, reconcile, and
// dispatch the best-effort follow-ups.
type Service struct {
	cfg        Config
	db         *gorm.DB
	engine     *reconcile.Engine
	projector  *cache.Projector
	dispatcher *enrich.Dispatcher
	notifier   alert.Notifier
	logger     *zap.Logger
}

// NewService creates a POS webhook service.
func NewService(cfg Config, db *gorm.DB, engine *reconcile.Engine, projector *cache.Projector,
	dispatcher *enrich.Dispatcher, notifier alert.Notifier, logger *zap.Logger) *Service {
	return &Service{
		cfg:        cfg,
		db:         db,
		engine:     engine,
		projector:  projector,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Process parses a verified raw body and applies the event. Parse errors
// pass through for the handler to map onto response codes; a non-nil result
// means the delivery was accepted (possibly as a harmless no-op).
func (s *Service) Process(ctx context.Context, raw []byte, rayID string) (*reconcile.Result, error) {
	ev, err := event.Parse(raw, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Apply(ctx, ev)
	if err != nil {
		// Transient persistence failure: the sender retries, and an
		// operator should know if these pile up.
		s.notifier.Notify(ctx, alert.Message{
			Title:    "Webhook reconciliation failed",
			Priority: alert.PriorityCritical,
			RayID:    rayID,
			Subject:  ev.SubjectID,
			Body:     err.Error(),
			Action:   "check database health; the sender will redeliver",
		})
		return nil, err
	}

	s.afterApply(res, rayID)
	return res, nil
}

// afterApply dispatches the asynchronous follow-ups of a committed event.
// None of them are awaited by the triggering request.
func (s *Service) afterApply(res *reconcile.Result, rayID string) {
	if res.CacheErr != nil {
		s.notifier.Notify(context.Background(), alert.Message{
			Title:    "Catalog cache projection failed",
			Priority: alert.PriorityWarning,
			RayID:    rayID,
			Subject:  res.SubjectID,
			Body:     res.CacheErr.Error(),
			Action:   "run `storefront cache rebuild`; reads are stale until the next successful write",
		})
	}

	if res.Applied && (res.Kind == event.KindInventory || res.Kind == event.KindCatalog) {
		go s.projector.Mirror(context.Background(), s.db)
	}

	if res.NewProduct {
		var product catalogModels.Product
		if err := s.db.First(&product, "id = ?", res.SubjectID).Error; err != nil {
			s.logger.Warn("Enrichment skipped, product not readable",
				zap.String("product_id", res.SubjectID), zap.Error(err))
			return
		}
		go s.dispatcher.Enrich(context.Background(), product, rayID)
	}
}

// SetStock applies an absolute stock value through the same reconciliation
// path webhooks use, marked with the given audit reason. Used by operator
// tooling (manual sync).
func (s *Service) SetStock(ctx context.Context, productID string, quantity int64, reason string) (*reconcile.Result, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative")
	}
	ev := &event.Event{
		Kind:      event.KindInventory,
		SubjectID: productID,
		Payload: map[string]any{
			"quantity": quantity,
			"reason":   reason,
		},
		ReceivedAt: time.Now().UTC(),
	}
	return s.engine.Apply(ctx, ev)
}
