package pos

import (
	"errors"

	"storefront/core/logger"
	"storefront/feature/pos/event"
	"storefront/feature/pos/signature"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Signature headers. Which one a delivery carries depends on the channel's
// configured scheme at the sender.
const (
	// HeaderSignature256 carries the hex HMAC-SHA256 body signature.
	HeaderSignature256 = "X-Pos-Signature-256"
	// HeaderSignature carries the base64 HMAC-SHA1 url+body signature.
	HeaderSignature = "X-Pos-Signature"
)

// Handler handles HTTP requests for the POS webhook intake.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers one webhook route per channel.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/webhooks/pos")
	group.Post("/"+ChannelInventory, h.handleWebhook(ChannelInventory))
	group.Post("/"+ChannelOrders, h.handleWebhook(ChannelOrders))
	group.Post("/"+ChannelCatalog, h.handleWebhook(ChannelCatalog))
}

// handleWebhook verifies, parses, and applies one delivery for a channel.
// @Summary Receive POS webhook
// @Description Accepts a signed change notification from the POS system.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param channel path string true "Webhook channel (inventory, orders, catalog)"
// @Success 200 {object} map[string]interface{} "Processed or harmlessly ignored"
// @Failure 400 {object} map[string]string "Structurally invalid payload"
// @Failure 403 {object} map[string]string "Signature verification failed"
// @Failure 500 {object} map[string]string "Persistence failure; sender should retry"
// @Router /webhooks/pos/{channel} [post]
func (h *Handler) handleWebhook(channel string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c).With(zap.String("channel", channel))
		rayID, _ := c.Locals("ray_id").(string)

		// The signature covers the exact bytes the sender put on the
		// wire; Fiber reuses its buffer, so copy before anything else
		// touches the request.
		raw := append([]byte(nil), c.Body()...)

		if err := h.verify(c, channel, raw); err != nil {
			l.Warn("Webhook rejected", zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "signature verification failed",
			})
		}

		res, err := h.service.Process(c.Context(), raw, rayID)
		switch {
		case errors.Is(err, event.ErrUnknownType):
			l.Info("Webhook ignored, unknown type")
			return c.JSON(fiber.Map{"status": "ignored"})
		case errors.Is(err, event.ErrUnparseable):
			l.Warn("Webhook payload unparseable", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unparseable payload",
			})
		case err != nil:
			l.Error("Webhook processing failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal error, retry delivery",
			})
		}

		l.Info("Webhook processed",
			zap.String("kind", string(res.Kind)),
			zap.String("subject", res.SubjectID),
			zap.Bool("applied", res.Applied),
			zap.String("note", res.Note),
		)
		return c.JSON(fiber.Map{
			"status":  "ok",
			"kind":    res.Kind,
			"subject": res.SubjectID,
			"applied": res.Applied,
		})
	}
}

// verify authenticates the delivery with whichever signature header is
// present. Missing both is a rejection, not an error.
func (h *Handler) verify(c *fiber.Ctx, channel string, raw []byte) error {
	secret := h.service.cfg.SecretFor(channel)

	if sig := c.Get(HeaderSignature256); sig != "" {
		return signature.VerifyBody(raw, sig, secret)
	}
	if sig := c.Get(HeaderSignature); sig != "" {
		url := h.service.cfg.NotificationURL("/webhooks/pos/" + channel)
		return signature.VerifyURL(url, raw, sig, secret)
	}
	return signature.ErrMissing
}
