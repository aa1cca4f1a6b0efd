package catalog

import (
	"errors"

	"storefront/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type handler struct {
	service *Service
	logger  *zap.Logger
}

// RegisterRoutes mounts the storefront catalog read API.
func RegisterRoutes(app *fiber.App, service *Service, logg *zap.Logger) {
	h := &handler{service: service, logger: logg}

	group := app.Group("/catalog")
	group.Get("/", h.list)
	group.Get("/drift", h.drift)
	group.Get("/:id", h.get)
}

// list godoc
//
//	@Summary	List the catalog
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	cache.Blob
//	@Router		/catalog [get]
func (h *handler) list(c *fiber.Ctx) error {
	blob, err := h.service.Catalog(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to serve catalog", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	return c.JSON(blob)
}

// get godoc
//
//	@Summary	Get one product with enrichment metadata
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"product id"
//	@Success	200	{object}	ProductDetail
//	@Failure	404	{object}	map[string]string
//	@Router		/catalog/{id} [get]
func (h *handler) get(c *fiber.Ctx) error {
	detail, err := h.service.Product(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load product", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "product unavailable"})
	}
	return c.JSON(detail)
}

// drift godoc
//
//	@Summary	Compare the cache blob against the products table
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	DriftReport
//	@Router		/catalog/drift [get]
func (h *handler) drift(c *fiber.Ctx) error {
	report, err := h.service.Drift(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to compute drift report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "drift report unavailable"})
	}
	return c.JSON(report)
}
