// Package orders carries the local order lifecycle: checkout creates a
// pending order with immutable line snapshots, and POS webhook events move
// the status forward from there.
//
// Checkout never decrements stock. It checks sufficiency so a customer is
// not promised inventory that is plainly gone, but the stock count itself
// only changes when the POS reports an inventory change. Cancelled orders
// are terminal; duplicate status deliveries no-op.
package orders
