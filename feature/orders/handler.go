package orders

import (
	"errors"

	"storefront/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type handler struct {
	service *Service
	logger  *zap.Logger
}

// RegisterRoutes mounts the checkout and order lookup endpoints.
func RegisterRoutes(app *fiber.App, service *Service, logg *zap.Logger) {
	h := &handler{service: service, logger: logg}

	group := app.Group("/orders")
	group.Post("/", h.checkout)
	group.Get("/:reference", h.get)
}

// checkout godoc
//
//	@Summary	Create a pending order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CheckoutRequest	true	"checkout payload"
//	@Success	201		{object}	models.Order
//	@Failure	400		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/orders [post]
func (h *handler) checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	order, err := h.service.Checkout(c.Context(), req)
	if err != nil {
		var vErrs validator.ValidationErrors
		switch {
		case errors.As(err, &vErrs):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrUnknownProduct):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			logger.WithRayID(h.logger, c).Error("Checkout failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// get godoc
//
//	@Summary	Get an order by reference
//	@Tags		orders
//	@Produce	json
//	@Param		reference	path		string	true	"order reference"
//	@Success	200			{object}	models.Order
//	@Failure	404			{object}	map[string]string
//	@Router		/orders/{reference} [get]
func (h *handler) get(c *fiber.Ctx) error {
	order, err := h.service.ByReference(c.Context(), c.Params("reference"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load order", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "order unavailable"})
	}
	return c.JSON(order)
}
