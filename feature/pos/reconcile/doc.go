// Package reconcile applies canonical POS events to authoritative storage.
//
// Each event runs in a single storage-gateway transaction: read the current
// value under a row lock, write the new value, append exactly one audit row
// with the schema trigger suppressed, and commit. Inventory quantities are
// absolute replacements, not deltas, so redelivery and out-of-order arrival
// converge instead of double-counting; the last applied value wins.
//
// Cache projection is a secondary effect scoped in a savepoint. Its failure
// is surfaced on the Result for alerting but never rolls back the primary
// change or reaches the notification sender.
package reconcile
