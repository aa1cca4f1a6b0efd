package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestParseInventory(t *testing.T) {
	t.Run("Array Shape Picks First Element", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_counts":[
			{"catalog_object_id":"prod-1","quantity":"7","state":"IN_STOCK"},
			{"catalog_object_id":"prod-2","quantity":"9","state":"IN_STOCK"}
		]}}}`)

		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, KindInventory, ev.Kind)
		assert.Equal(t, "prod-1", ev.SubjectID)
		qty, ok := ev.Int64("quantity")
		assert.True(t, ok)
		assert.EqualValues(t, 7, qty)
		assert.Equal(t, now, ev.ReceivedAt)
	})

	t.Run("Single Object Shape", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"prod-3","quantity":12,"state":"IN_STOCK"}}}}`)

		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, "prod-3", ev.SubjectID)
		qty, _ := ev.Int64("quantity")
		assert.EqualValues(t, 12, qty)
	})

	t.Run("Quantity As Quoted Number", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"p","quantity":"42"}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		qty, _ := ev.Int64("quantity")
		assert.EqualValues(t, 42, qty)
	})

	t.Run("Unparseable Quantity Fails Closed", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"p","quantity":"lots"}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})

	t.Run("Missing Quantity Fails Closed", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"p"}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})

	t.Run("Negative Quantity Rejected", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"p","quantity":-3}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})

	t.Run("Missing Subject Rejected", func(t *testing.T) {
		raw := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"quantity":3}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})
}

func TestParseOrder(t *testing.T) {
	t.Run("Order Updated Shape", func(t *testing.T) {
		raw := []byte(`{"type":"order.updated","data":{"object":{"order_updated":
			{"order_id":"pos-ord-1","state":"COMPLETED"}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, KindOrder, ev.Kind)
		assert.Equal(t, "pos-ord-1", ev.SubjectID)
		status, _ := ev.String("status")
		assert.Equal(t, "COMPLETED", status)
	})

	t.Run("Nested Order Shape", func(t *testing.T) {
		raw := []byte(`{"type":"order.created","data":{"object":{"order":
			{"id":"pos-ord-2","state":"OPEN"}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, "pos-ord-2", ev.SubjectID)
	})

	t.Run("Missing State Fails Closed", func(t *testing.T) {
		raw := []byte(`{"type":"order.updated","data":{"object":{"order":{"id":"x"}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})
}

func TestParsePayment(t *testing.T) {
	t.Run("Payment Shape With Amount", func(t *testing.T) {
		raw := []byte(`{"type":"payment.updated","data":{"object":{"payment":
			{"id":"pay-1","order_id":"pos-ord-1","status":"COMPLETED","amount_money":{"amount":"2599"}}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, KindPayment, ev.Kind)
		assert.Equal(t, "pos-ord-1", ev.SubjectID)
		amount, ok := ev.Int64("amount_cents")
		assert.True(t, ok)
		assert.EqualValues(t, 2599, amount)
		pid, _ := ev.String("payment_id")
		assert.Equal(t, "pay-1", pid)
	})

	t.Run("Payment Updated Shape", func(t *testing.T) {
		raw := []byte(`{"type":"payment.updated","data":{"object":{"payment_updated":
			{"payment_id":"pay-2","order_id":"pos-ord-9","status":"APPROVED"}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, "pos-ord-9", ev.SubjectID)
	})

	t.Run("Bad Amount Fails Closed", func(t *testing.T) {
		raw := []byte(`{"type":"payment.updated","data":{"object":{"payment":
			{"id":"p","order_id":"o","status":"COMPLETED","amount_money":{"amount":"25.99"}}}}}`)
		_, err := Parse(raw, now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})
}

func TestParseCatalog(t *testing.T) {
	t.Run("Single Object Shape", func(t *testing.T) {
		raw := []byte(`{"type":"catalog.object.updated","data":{"object":{"catalog_object":
			{"id":"prod-9","type":"ITEM","item_data":{"name":"Walnut Desk","category":"furniture",
			 "variations":[{"item_variation_data":{"price_money":{"amount":49900}}}]}}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, KindCatalog, ev.Kind)
		assert.Equal(t, "prod-9", ev.SubjectID)
		name, _ := ev.String("name")
		assert.Equal(t, "Walnut Desk", name)
		price, ok := ev.Int64("price_cents")
		assert.True(t, ok)
		assert.EqualValues(t, 49900, price)
	})

	t.Run("Array Shape Picks First", func(t *testing.T) {
		raw := []byte(`{"type":"catalog.version.updated","data":{"object":{"catalog_objects":[
			{"id":"a","type":"ITEM","item_data":{"name":"First"}},
			{"id":"b","type":"ITEM","item_data":{"name":"Second"}}]}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		assert.Equal(t, "a", ev.SubjectID)
	})

	t.Run("No Priced Variation Omits Price", func(t *testing.T) {
		raw := []byte(`{"type":"catalog.object.updated","data":{"object":{"catalog_object":
			{"id":"c","type":"ITEM","item_data":{"name":"Unpriced"}}}}}`)
		ev, err := Parse(raw, now)
		require.NoError(t, err)
		_, ok := ev.Int64("price_cents")
		assert.False(t, ok)
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("Unknown Type", func(t *testing.T) {
		_, err := Parse([]byte(`{"type":"loyalty.account.updated","data":{}}`), now)
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{nope`), now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})

	t.Run("Missing Type", func(t *testing.T) {
		_, err := Parse([]byte(`{"data":{}}`), now)
		assert.ErrorIs(t, err, ErrUnparseable)
	})
}
