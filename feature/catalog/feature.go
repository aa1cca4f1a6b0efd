package catalog

import (
	"storefront/feature/catalog/cache"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature exposes the catalog read API.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the catalog feature.
func NewFeature(db *gorm.DB, projector *cache.Projector, logg *zap.Logger) *Feature {
	return &Feature{
		service: NewService(db, projector, logg),
		logger:  logg,
	}
}

func (f *Feature) Name() string {
	return "catalog"
}

func (f *Feature) Register(app *fiber.App) error {
	RegisterRoutes(app, f.service, f.logger)
	return nil
}

// Service exposes the catalog service for operator commands.
func (f *Feature) Service() *Service {
	return f.service
}
