package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/core/txn"
	catalogModels "storefront/feature/catalog/models"
	"storefront/feature/orders"
	orderModels "storefront/feature/orders/models"
	"storefront/feature/pos/event"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Projector updates the denormalized catalog cache on the transaction handle
// it is given. The engine scopes it in a savepoint; implementations need no
// failure handling of their own.
type Projector interface {
	Project(tx *gorm.DB) error
}

// Result summarizes what one applied event did. It is returned alongside a
// nil error for every outcome that is not a persistence failure, including
// harmless no-ops.
type Result struct {
	Kind      event.Kind
	SubjectID string

	// Applied is false for harmless no-ops: unknown subject, duplicate
	// status, non-forward transition.
	Applied bool
	// Note explains a no-op for logs.
	Note string

	// Inventory outcomes.
	QuantityChange int
	NewQuantity    int

	// Order/payment outcomes.
	PreviousStatus string
	NewStatus      string

	// NewProduct is true when a catalog event created a product; the
	// caller dispatches enrichment for those.
	NewProduct bool

	// CacheErr is set when the savepoint-scoped cache projection failed.
	// The primary change still committed; the caller alerts on this.
	CacheErr error
}

// Engine applies canonical events to authoritative storage, one transaction
// per event. A failure anywhere before commit rolls the whole event back;
// the engine never partially applies a change.
type Engine struct {
	gw        *txn.Gateway
	projector Projector
	logger    *zap.Logger
}

// New creates a reconciliation engine.
func New(gw *txn.Gateway, projector Projector, logger *zap.Logger) *Engine {
	return &Engine{gw: gw, projector: projector, logger: logger}
}

// Apply reconciles one canonical event. The returned error indicates a
// persistence failure the sender should retry; every other outcome is a
// Result with a nil error.
func (e *Engine) Apply(ctx context.Context, ev *event.Event) (*Result, error) {
	res := &Result{Kind: ev.Kind, SubjectID: ev.SubjectID}

	var err error
	switch ev.Kind {
	case event.KindInventory:
		err = e.gw.Transaction(ctx, func(tx *gorm.DB) error {
			return e.applyInventory(tx, ev, res)
		})
	case event.KindCatalog:
		err = e.gw.Transaction(ctx, func(tx *gorm.DB) error {
			return e.applyCatalog(tx, ev, res)
		})
	case event.KindOrder, event.KindPayment:
		err = e.gw.Transaction(ctx, func(tx *gorm.DB) error {
			return e.applyOrderStatus(tx, ev, res)
		})
	default:
		return nil, fmt.Errorf("unhandled event kind %q", ev.Kind)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// applyInventory sets the product's stock to the absolute quantity carried
// by the event. The sender treats quantities as snapshots, so applying them
// as deltas would double-count under redelivery; the audit row's
// quantity_change is derived purely for reporting. Two deliveries for the
// same product serialize on the row lock; whichever commits last wins.
func (e *Engine) applyInventory(tx *gorm.DB, ev *event.Event, res *Result) error {
	quantity, ok := ev.Int64("quantity")
	if !ok {
		return fmt.Errorf("inventory event missing quantity")
	}

	var product catalogModels.Product
	err := txn.LockForUpdate(tx).First(&product, "id = ?", ev.SubjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The item may not have been loaded into this catalog yet.
		res.Note = "unknown product"
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to lock product %s: %w", ev.SubjectID, err)
	}

	newQuantity := int(quantity)
	change := newQuantity - product.StockCount

	err = tx.Model(&product).Updates(map[string]any{
		"stock_count": newQuantity,
		"updated_at":  time.Now().UTC(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update stock for %s: %w", ev.SubjectID, err)
	}

	audit := catalogModels.InventoryAudit{
		ProductID:      product.ID,
		QuantityChange: change,
		Reason:         auditReason(ev, change),
		Notes:          auditNotes(ev),
	}
	// The schema's audit trigger re-derives stock from audit rows; it must
	// stay quiet here or this change would be applied twice.
	err = txn.WithTriggerSuppressed(tx, func(tx *gorm.DB) error {
		return tx.Create(&audit).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert audit row for %s: %w", ev.SubjectID, err)
	}

	res.Applied = true
	res.QuantityChange = change
	res.NewQuantity = newQuantity
	res.CacheErr = e.projectInSavepoint(tx)
	return nil
}

// applyCatalog creates or updates a product from a catalog event. Stock is
// not touched; only inventory events move it.
func (e *Engine) applyCatalog(tx *gorm.DB, ev *event.Event, res *Result) error {
	name, _ := ev.String("name")
	category, _ := ev.String("category")
	price, hasPrice := ev.Int64("price_cents")

	var product catalogModels.Product
	err := txn.LockForUpdate(tx).First(&product, "id = ?", ev.SubjectID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		product = catalogModels.Product{
			ID:       ev.SubjectID,
			Name:     name,
			Category: category,
		}
		if hasPrice {
			product.PriceCents = price
		}
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product %s: %w", ev.SubjectID, err)
		}
		res.NewProduct = true
	case err != nil:
		return fmt.Errorf("failed to lock product %s: %w", ev.SubjectID, err)
	default:
		updates := map[string]any{
			"name":       name,
			"category":   category,
			"updated_at": time.Now().UTC(),
		}
		if hasPrice {
			updates["price_cents"] = price
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product %s: %w", ev.SubjectID, err)
		}
	}

	res.Applied = true
	res.CacheErr = e.projectInSavepoint(tx)
	return nil
}

// applyOrderStatus maps the POS status vocabulary onto the local order and
// updates it only for legitimate forward transitions. An order id with no
// local match is a harmless no-op: the order may not exist here yet, or
// belongs to a different flow.
func (e *Engine) applyOrderStatus(tx *gorm.DB, ev *event.Event, res *Result) error {
	posStatus, ok := ev.String("status")
	if !ok {
		return fmt.Errorf("%s event missing status", ev.Kind)
	}

	var order orderModels.Order
	err := txn.LockForUpdate(tx).First(&order, "pos_order_id = ?", ev.SubjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		res.Note = "unknown order"
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to lock order %s: %w", ev.SubjectID, err)
	}

	res.PreviousStatus = order.Status

	newStatus, known := orders.MapPOSStatus(posStatus)
	if !known {
		res.Note = fmt.Sprintf("unmapped pos status %q", posStatus)
		return nil
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if paymentID, ok := ev.String("payment_id"); ok && paymentID != "" {
		updates["payment_id"] = paymentID
	}

	if !orders.CanTransition(order.Status, newStatus) {
		// Duplicate delivery or out-of-order status; payment linkage is
		// still worth recording.
		if len(updates) > 1 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update order %s: %w", ev.SubjectID, err)
			}
		}
		res.Note = fmt.Sprintf("no transition from %s to %s", order.Status, newStatus)
		return nil
	}

	updates["status"] = newStatus
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order %s: %w", ev.SubjectID, err)
	}

	res.Applied = true
	res.NewStatus = newStatus
	return nil
}

// projectInSavepoint runs the cache projection under a savepoint so its
// failure cannot unwind the primary change. The returned error is reported,
// not propagated: a stale cache self-heals on the next successful write.
func (e *Engine) projectInSavepoint(tx *gorm.DB) error {
	if e.projector == nil {
		return nil
	}
	err := txn.WithSavepoint(tx, "cache_projection", e.projector.Project)
	if err != nil {
		e.logger.Warn("Cache projection failed, continuing", zap.Error(err))
	}
	return err
}

// auditReason derives the audit reason from the delta unless the event
// carries an explicit one (manual sync tooling does).
func auditReason(ev *event.Event, change int) string {
	if reason, ok := ev.String("reason"); ok && reason != "" {
		return reason
	}
	switch {
	case change > 0:
		return catalogModels.ReasonRestock
	case change < 0:
		return catalogModels.ReasonSale
	default:
		return catalogModels.ReasonManualSync
	}
}

func auditNotes(ev *event.Event) string {
	if state, ok := ev.String("state"); ok && state != "" {
		return fmt.Sprintf("pos state %s", state)
	}
	return "pos inventory sync"
}
