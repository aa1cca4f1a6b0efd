// Package models defines the persistent order types: orders and their
// immutable line-item snapshots.
package models
