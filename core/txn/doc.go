// Package txn is the storage gateway: a thin unit-of-work layer over GORM.
//
// It groups the transactional primitives the webhook reconciliation core
// depends on:
//
//   - Gateway.Transaction: scoped transaction with guaranteed rollback if the
//     callback fails.
//   - LockForUpdate: row-level lock acquisition so concurrent deliveries for
//     the same subject serialize.
//   - WithTriggerSuppressed: sets the session variable the inventory audit
//     trigger checks, so a direct stock write is not applied a second time by
//     the trigger.
//   - WithSavepoint: scopes secondary effects (cache projection) so their
//     failure never unwinds the primary state change.
//
// The gateway is dialect-aware: locking and trigger suppression only apply on
// MySQL, which lets the same code run against in-memory sqlite in tests.
package txn
