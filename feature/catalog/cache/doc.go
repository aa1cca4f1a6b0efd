// Package cache projects the product catalog into a denormalized blob in
// the key/value cache table, optionally mirrored to object storage.
//
// The blob is eventually consistent with the products table and never the
// system of record: every successful reconciliation that touches catalog or
// stock data overwrites it wholesale, and a failed projection is recovered
// by the next successful one (or by the read-through rebuild in Get).
package cache
