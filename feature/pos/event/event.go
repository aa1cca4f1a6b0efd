package event

import (
	"errors"
	"time"
)

// Kind classifies a canonical event.
type Kind string

const (
	KindInventory Kind = "inventory-change"
	KindOrder     Kind = "order-change"
	KindPayment   Kind = "payment-change"
	KindCatalog   Kind = "catalog-change"
)

var (
	// ErrUnknownType marks a notification type this system does not
	// handle. Deliveries of unknown types are harmlessly ignored.
	ErrUnknownType = errors.New("unknown notification type")
	// ErrUnparseable marks a structurally invalid payload. The event is
	// never partially populated: parsing either yields a complete event
	// or this error.
	ErrUnparseable = errors.New("unparseable payload")
)

// Event is the canonical internal representation of an inbound POS
// notification. It is consumed exactly once by the reconciliation engine and
// never persisted verbatim.
type Event struct {
	// Kind classifies the event.
	Kind Kind
	// SubjectID references a catalog item (inventory/catalog kinds) or a
	// POS order id (order/payment kinds).
	SubjectID string
	// Payload holds kind-specific fields with coerced types:
	//   inventory: "quantity" int64, "state" string
	//   order:     "status" string (raw POS vocabulary)
	//   payment:   "status" string, "payment_id" string, "amount_cents" int64
	//   catalog:   "name" string, "category" string, "price_cents" int64
	Payload map[string]any
	// ReceivedAt is when this delivery reached us, not when the sender
	// emitted it; deliveries are not assumed to arrive in send order.
	ReceivedAt time.Time
}

// Int64 returns a payload field as int64.
func (e *Event) Int64(key string) (int64, bool) {
	v, ok := e.Payload[key].(int64)
	return v, ok
}

// String returns a payload field as string.
func (e *Event) String(key string) (string, bool) {
	v, ok := e.Payload[key].(string)
	return v, ok
}
