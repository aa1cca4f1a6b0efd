// Package middleware groups Fiber middleware used across features:
// rayid (request correlation) and auth (API key protection for the
// storefront/admin surface).
package middleware
