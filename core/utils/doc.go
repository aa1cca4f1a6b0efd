// Package utils provides tolerant type conversion helpers for values coming
// out of JSON-decoded cache blobs, where every number is a float64.
//
// These helpers default to zero on unconvertible input and are only suitable
// for diagnostic paths (drift reports); the webhook event parser uses strict
// coercion that fails closed instead.
package utils
