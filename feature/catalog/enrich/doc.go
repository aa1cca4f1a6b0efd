// Package enrich fetches supplementary metadata for newly observed catalog
// items from a third-party provider.
//
// Enrichment is additive and never required for correctness: the lookup is
// bounded by a timer race, guarded by a circuit breaker, and a failure
// leaves the catalog item usable with its core fields only. Successful
// results are persisted keyed by product so the same subject is never looked
// up twice.
package enrich
