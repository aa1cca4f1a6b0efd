package pos

import (
	"storefront/core/alert"
	"storefront/feature/catalog/cache"
	"storefront/feature/catalog/enrich"
	"storefront/feature/pos/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the POS webhook intake into the application.
type Feature struct {
	service *Service
}

// NewFeature creates the POS feature with its service graph.
func NewFeature(cfg Config, db *gorm.DB, engine *reconcile.Engine, projector *cache.Projector,
	dispatcher *enrich.Dispatcher, notifier alert.Notifier, logg *zap.Logger) *Feature {
	return &Feature{
		service: NewService(cfg, db, engine, projector, dispatcher, notifier, logg),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "pos"
}

// Register wires the webhook routes.
func (f *Feature) Register(app *fiber.App) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}

// Service exposes the webhook service for operator commands.
func (f *Feature) Service() *Service {
	return f.service
}
