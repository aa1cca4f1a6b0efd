// Package models defines the persistent catalog types: products, the
// append-only inventory audit table, the key/value cache table, and
// persisted enrichment metadata.
package models
