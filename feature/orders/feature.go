package orders

import (
	"storefront/core/txn"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes checkout and order lookups.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the orders feature.
func NewFeature(gw *txn.Gateway, logg *zap.Logger) *Feature {
	return &Feature{
		service: NewService(gw, logg),
		logger:  logg,
	}
}

func (f *Feature) Name() string {
	return "orders"
}

func (f *Feature) Register(app *fiber.App) error {
	RegisterRoutes(app, f.service, f.logger)
	return nil
}
