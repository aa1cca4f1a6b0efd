// Package storage provides S3-compatible object storage access via Minio.
//
// The storefront uses it for one thing: mirroring the denormalized catalog
// snapshot so a CDN can serve it without touching the database. The mirror
// is best-effort; the cache table in the relational store stays
// authoritative for application reads.
//
// The Client interface is deliberately narrow so tests can substitute the
// testify mock in core/storage/mocks.
package storage
