package pos_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/core/alert"
	"storefront/core/database"
	"storefront/core/middleware/rayid"
	"storefront/core/txn"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	catalogModels "storefront/feature/catalog/models"
	orderModels "storefront/feature/orders/models"
	"storefront/feature/pos"
	"storefront/feature/pos/reconcile"
	"storefront/feature/pos/signature"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	generalSecret   = "general-secret"
	inventorySecret = "inventory-secret"
	baseURL         = "https://shop.example"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogModels.Product{}, &catalogModels.InventoryAudit{},
		&catalogModels.CacheEntry{}, &catalogModels.ProductMeta{},
		&orderModels.Order{}, &orderModels.OrderItem{},
	))

	logg := zap.NewNop()
	cfg := pos.Config{
		Secret:              generalSecret,
		InventorySecret:     inventorySecret,
		NotificationBaseURL: baseURL,
	}
	projector := cache.NewProjector(logg, nil, "", false)
	engine := reconcile.New(txn.New(db), projector, logg)
	dispatcher := enrich.NewDispatcher(db, nil, alert.Nop{}, logg, enrich.Config{})

	app := fiber.New()
	app.Use(rayid.New())
	feature := pos.NewFeature(cfg, db, engine, projector, dispatcher, alert.Nop{}, logg)
	require.NoError(t, feature.Register(app))
	return app, db
}

func postWebhook(t *testing.T, app *fiber.App, channel string, body []byte, headers map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/pos/"+channel, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func TestWebhookInventory(t *testing.T) {
	inventoryBody := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
		{"catalog_object_id":"p1","quantity":"7","state":"IN_STOCK"}}}}`)

	t.Run("Body Scheme Signature Accepted And Applied", func(t *testing.T) {
		app, db := setupApp(t)
		require.NoError(t, db.Create(&catalogModels.Product{ID: "p1", Name: "Armchair", StockCount: 10}).Error)

		resp := postWebhook(t, app, pos.ChannelInventory, inventoryBody, map[string]string{
			pos.HeaderSignature256: signature.SignBody(inventoryBody, inventorySecret),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "ok", payload["status"])
		assert.Equal(t, true, payload["applied"])

		var p catalogModels.Product
		require.NoError(t, db.First(&p, "id = ?", "p1").Error)
		assert.Equal(t, 7, p.StockCount)
	})

	t.Run("URL Scheme Signature Accepted", func(t *testing.T) {
		app, db := setupApp(t)
		require.NoError(t, db.Create(&catalogModels.Product{ID: "p1", StockCount: 10}).Error)

		url := baseURL + "/webhooks/pos/inventory"
		resp := postWebhook(t, app, pos.ChannelInventory, inventoryBody, map[string]string{
			pos.HeaderSignature: signature.SignURL(url, inventoryBody, inventorySecret),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Bad Signature Rejected Without State Change", func(t *testing.T) {
		app, db := setupApp(t)
		require.NoError(t, db.Create(&catalogModels.Product{ID: "p1", StockCount: 10}).Error)

		resp := postWebhook(t, app, pos.ChannelInventory, inventoryBody, map[string]string{
			pos.HeaderSignature256: signature.SignBody(inventoryBody, "wrong-secret"),
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var p catalogModels.Product
		require.NoError(t, db.First(&p, "id = ?", "p1").Error)
		assert.Equal(t, 10, p.StockCount)
	})

	t.Run("Missing Signature Rejected", func(t *testing.T) {
		app, _ := setupApp(t)
		resp := postWebhook(t, app, pos.ChannelInventory, inventoryBody, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Unparseable Payload Is 400", func(t *testing.T) {
		app, _ := setupApp(t)
		body := []byte(`{"type":"inventory.count.updated","data":{"object":{"inventory_count":
			{"catalog_object_id":"p1","quantity":"lots"}}}}`)
		resp := postWebhook(t, app, pos.ChannelInventory, body, map[string]string{
			pos.HeaderSignature256: signature.SignBody(body, inventorySecret),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Event Type Is Harmlessly Ignored", func(t *testing.T) {
		app, _ := setupApp(t)
		body := []byte(`{"type":"loyalty.account.updated","data":{}}`)
		resp := postWebhook(t, app, pos.ChannelInventory, body, map[string]string{
			pos.HeaderSignature256: signature.SignBody(body, inventorySecret),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "ignored", payload["status"])
	})
}

func TestWebhookOrdersChannel(t *testing.T) {
	t.Run("Falls Back To General Secret", func(t *testing.T) {
		app, db := setupApp(t)
		require.NoError(t, db.Create(&orderModels.Order{
			Reference: "ref-1", PosOrderID: "pos-1", Status: "pending",
		}).Error)

		body := []byte(`{"type":"order.updated","data":{"object":{"order_updated":
			{"order_id":"pos-1","state":"COMPLETED"}}}}`)
		resp := postWebhook(t, app, pos.ChannelOrders, body, map[string]string{
			pos.HeaderSignature256: signature.SignBody(body, generalSecret),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var o orderModels.Order
		require.NoError(t, db.First(&o, "pos_order_id = ?", "pos-1").Error)
		assert.Equal(t, "confirmed", o.Status)
	})

	t.Run("Unknown Order Returns Success", func(t *testing.T) {
		app, _ := setupApp(t)
		body := []byte(`{"type":"order.updated","data":{"object":{"order_updated":
			{"order_id":"pos-nowhere","state":"COMPLETED"}}}}`)
		resp := postWebhook(t, app, pos.ChannelOrders, body, map[string]string{
			pos.HeaderSignature256: signature.SignBody(body, generalSecret),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, false, payload["applied"])
	})
}
