package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// The POS sender nests the same logical event in two known shapes: a
// single-object form and an object-array form. Each decoder below tries the
// known shapes in a fixed priority order (array first, then single) and
// fails closed with ErrUnparseable when neither matches.

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type dataObject struct {
	ID     string          `json:"id"`
	Object json.RawMessage `json:"object"`
}

// Parse normalizes a raw webhook body into a canonical Event.
// It returns ErrUnknownType for notification types this system does not
// handle, and ErrUnparseable for bodies that match no known shape.
func Parse(raw []byte, receivedAt time.Time) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrUnparseable, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrUnparseable)
	}

	var obj dataObject
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &obj); err != nil {
			return nil, fmt.Errorf("%w: invalid data envelope: %v", ErrUnparseable, err)
		}
	}

	switch env.Type {
	case "inventory.count.updated":
		return parseInventory(obj, receivedAt)
	case "order.created", "order.updated":
		return parseOrder(obj, receivedAt)
	case "payment.created", "payment.updated":
		return parsePayment(obj, receivedAt)
	case "catalog.object.updated", "catalog.version.updated":
		return parseCatalog(obj, receivedAt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, env.Type)
	}
}

type inventoryCount struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        any    `json:"quantity"`
	State           string `json:"state"`
}

func parseInventory(obj dataObject, receivedAt time.Time) (*Event, error) {
	// Shape A: {"object":{"inventory_counts":[{...}, ...]}}
	// Shape B: {"object":{"inventory_count":{...}}}
	var counts struct {
		Counts []inventoryCount `json:"inventory_counts"`
		Count  *inventoryCount  `json:"inventory_count"`
	}
	if err := json.Unmarshal(obj.Object, &counts); err != nil {
		return nil, fmt.Errorf("%w: inventory object: %v", ErrUnparseable, err)
	}

	var count inventoryCount
	switch {
	case len(counts.Counts) > 0:
		// The sender batches sub-changes newest-first; the first element
		// is the one this delivery is about.
		count = counts.Counts[0]
	case counts.Count != nil:
		count = *counts.Count
	default:
		return nil, fmt.Errorf("%w: no inventory count in payload", ErrUnparseable)
	}

	if count.CatalogObjectID == "" {
		return nil, fmt.Errorf("%w: inventory count missing catalog_object_id", ErrUnparseable)
	}

	qty, err := coerceInt64(count.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory quantity: %v", ErrUnparseable, err)
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: negative quantity %d", ErrUnparseable, qty)
	}

	return &Event{
		Kind:      KindInventory,
		SubjectID: count.CatalogObjectID,
		Payload: map[string]any{
			"quantity": qty,
			"state":    count.State,
		},
		ReceivedAt: receivedAt,
	}, nil
}

func parseOrder(obj dataObject, receivedAt time.Time) (*Event, error) {
	// Shape A: {"object":{"order_updated":{"order_id":...,"state":...}}}
	// Shape B: {"object":{"order":{"id":...,"state":...}}}
	var shapes struct {
		Updated *struct {
			OrderID string `json:"order_id"`
			State   string `json:"state"`
		} `json:"order_updated"`
		Order *struct {
			ID    string `json:"id"`
			State string `json:"state"`
		} `json:"order"`
	}
	if err := json.Unmarshal(obj.Object, &shapes); err != nil {
		return nil, fmt.Errorf("%w: order object: %v", ErrUnparseable, err)
	}

	var orderID, state string
	switch {
	case shapes.Updated != nil:
		orderID, state = shapes.Updated.OrderID, shapes.Updated.State
	case shapes.Order != nil:
		orderID, state = shapes.Order.ID, shapes.Order.State
	default:
		return nil, fmt.Errorf("%w: no order in payload", ErrUnparseable)
	}
	if orderID == "" || state == "" {
		return nil, fmt.Errorf("%w: order id or state missing", ErrUnparseable)
	}

	return &Event{
		Kind:       KindOrder,
		SubjectID:  orderID,
		Payload:    map[string]any{"status": state},
		ReceivedAt: receivedAt,
	}, nil
}

func parsePayment(obj dataObject, receivedAt time.Time) (*Event, error) {
	// Shape A: {"object":{"payment":{"id","order_id","status","amount_money":{"amount"}}}}
	// Shape B: {"object":{"payment_updated":{"payment_id","order_id","status"}}}
	var shapes struct {
		Payment *struct {
			ID          string `json:"id"`
			OrderID     string `json:"order_id"`
			Status      string `json:"status"`
			AmountMoney *struct {
				Amount any `json:"amount"`
			} `json:"amount_money"`
		} `json:"payment"`
		Updated *struct {
			PaymentID string `json:"payment_id"`
			OrderID   string `json:"order_id"`
			Status    string `json:"status"`
		} `json:"payment_updated"`
	}
	if err := json.Unmarshal(obj.Object, &shapes); err != nil {
		return nil, fmt.Errorf("%w: payment object: %v", ErrUnparseable, err)
	}

	payload := map[string]any{}
	var orderID string
	switch {
	case shapes.Payment != nil:
		p := shapes.Payment
		orderID = p.OrderID
		payload["payment_id"] = p.ID
		payload["status"] = p.Status
		if p.AmountMoney != nil {
			amount, err := coerceInt64(p.AmountMoney.Amount)
			if err != nil {
				return nil, fmt.Errorf("%w: payment amount: %v", ErrUnparseable, err)
			}
			payload["amount_cents"] = amount
		}
	case shapes.Updated != nil:
		p := shapes.Updated
		orderID = p.OrderID
		payload["payment_id"] = p.PaymentID
		payload["status"] = p.Status
	default:
		return nil, fmt.Errorf("%w: no payment in payload", ErrUnparseable)
	}

	if orderID == "" {
		return nil, fmt.Errorf("%w: payment missing order_id", ErrUnparseable)
	}
	if payload["status"] == "" {
		return nil, fmt.Errorf("%w: payment missing status", ErrUnparseable)
	}

	return &Event{
		Kind:       KindPayment,
		SubjectID:  orderID,
		Payload:    payload,
		ReceivedAt: receivedAt,
	}, nil
}

type catalogObject struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	ItemData *struct {
		Name       string `json:"name"`
		Category   string `json:"category"`
		Variations []struct {
			ItemVariationData *struct {
				PriceMoney *struct {
					Amount any `json:"amount"`
				} `json:"price_money"`
			} `json:"item_variation_data"`
		} `json:"variations"`
	} `json:"item_data"`
}

func parseCatalog(obj dataObject, receivedAt time.Time) (*Event, error) {
	// Shape A: {"object":{"catalog_objects":[{...}, ...]}}
	// Shape B: {"object":{"catalog_object":{...}}}
	var shapes struct {
		Objects []catalogObject `json:"catalog_objects"`
		Object  *catalogObject  `json:"catalog_object"`
	}
	if err := json.Unmarshal(obj.Object, &shapes); err != nil {
		return nil, fmt.Errorf("%w: catalog object: %v", ErrUnparseable, err)
	}

	var co catalogObject
	switch {
	case len(shapes.Objects) > 0:
		co = shapes.Objects[0]
	case shapes.Object != nil:
		co = *shapes.Object
	default:
		return nil, fmt.Errorf("%w: no catalog object in payload", ErrUnparseable)
	}

	if co.ID == "" {
		return nil, fmt.Errorf("%w: catalog object missing id", ErrUnparseable)
	}
	if co.ItemData == nil || co.ItemData.Name == "" {
		return nil, fmt.Errorf("%w: catalog object missing item data", ErrUnparseable)
	}

	payload := map[string]any{
		"name":     co.ItemData.Name,
		"category": co.ItemData.Category,
	}

	// Price comes from the first variation when present; an item without a
	// priced variation keeps its current price.
	if len(co.ItemData.Variations) > 0 {
		v := co.ItemData.Variations[0]
		if v.ItemVariationData != nil && v.ItemVariationData.PriceMoney != nil {
			price, err := coerceInt64(v.ItemVariationData.PriceMoney.Amount)
			if err != nil {
				return nil, fmt.Errorf("%w: catalog price: %v", ErrUnparseable, err)
			}
			payload["price_cents"] = price
		}
	}

	return &Event{
		Kind:       KindCatalog,
		SubjectID:  co.ID,
		Payload:    payload,
		ReceivedAt: receivedAt,
	}, nil
}

// coerceInt64 converts a JSON number or numeric string to int64.
// The sender is inconsistent about quoting numbers; an unparseable value is
// an error, never a silent zero.
func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("non-integer number %v", n)
		}
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric string %q", n)
		}
		return parsed, nil
	case json.Number:
		return n.Int64()
	case nil:
		return 0, fmt.Errorf("missing numeric value")
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
