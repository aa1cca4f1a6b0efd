// Package catalog serves storefront product reads from the denormalized
// cache blob and carries the operator tooling around it: the initial seed
// loader, forced cache rebuilds, and the drift report.
//
// The products table is the source of truth but storefront list reads never
// touch it; they go through the cache projection, which rebuilds itself on a
// miss. Writes happen elsewhere, driven by webhook reconciliation.
package catalog
