package txn

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// suppressVar is the session variable checked by the inventory audit trigger.
// While it is set, the trigger must not re-derive stock from audit rows,
// otherwise a direct stock write would be applied twice.
const suppressVar = "@storefront_audit_sync"

// Gateway wraps a GORM handle and exposes the transactional primitives the
// reconciliation engine relies on: scoped transactions with rollback-on-exit,
// per-row locking, savepoints for secondary effects, and audit trigger
// suppression. It is passed explicitly; there is no package-level singleton.
type Gateway struct {
	db *gorm.DB
}

// New creates a gateway around an established database handle.
func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB returns the underlying handle for read paths that need no transaction.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Transaction runs fn inside a database transaction scoped to ctx.
// If fn returns an error the transaction is rolled back; otherwise it commits.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

// LockForUpdate returns a query handle that acquires a row lock (SELECT ...
// FOR UPDATE) on the rows it reads. Two concurrent transactions touching the
// same subject serialize here; different subjects proceed in parallel.
// SQLite has a single writer and no FOR UPDATE, so it is a no-op there.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// WithTriggerSuppressed runs fn with the audit trigger's guard variable set
// for the current session, and clears it afterwards even when fn fails.
// Only MySQL carries the trigger; on other dialects fn runs unwrapped.
func WithTriggerSuppressed(tx *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx.Dialector.Name() != "mysql" {
		return fn(tx)
	}

	if err := tx.Exec("SET " + suppressVar + " = 1").Error; err != nil {
		return fmt.Errorf("failed to suppress audit trigger: %w", err)
	}
	fnErr := fn(tx)
	if err := tx.Exec("SET " + suppressVar + " = NULL").Error; err != nil && fnErr == nil {
		return fmt.Errorf("failed to restore audit trigger: %w", err)
	}
	return fnErr
}

// WithSavepoint runs fn under a savepoint. If fn fails, the transaction is
// rolled back to the savepoint and the error is returned, but everything the
// enclosing transaction did before the savepoint stays intact. This is how a
// best-effort cache write can fail without losing the stock update that
// already succeeded.
func WithSavepoint(tx *gorm.DB, name string, fn func(tx *gorm.DB) error) error {
	if err := tx.SavePoint(name).Error; err != nil {
		return fmt.Errorf("failed to create savepoint %s: %w", name, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.RollbackTo(name).Error; rbErr != nil {
			return fmt.Errorf("savepoint rollback failed after %v: %w", err, rbErr)
		}
		return err
	}
	return nil
}
