package orders

import (
	"context"
	"errors"
	"fmt"

	"storefront/core/txn"
	catalogmodels "storefront/feature/catalog/models"
	"storefront/feature/orders/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates an order reference that does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrUnknownProduct indicates a checkout line naming a product id that
	// does not exist locally.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrInsufficientStock indicates a checkout line asking for more units
	// than the current stock count shows.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CheckoutItem is one requested line of a checkout.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CheckoutRequest is the storefront checkout payload.
type CheckoutRequest struct {
	CustomerName  string         `json:"customer_name" validate:"required"`
	CustomerEmail string         `json:"customer_email" validate:"required,email"`
	Fulfillment   string         `json:"fulfillment" validate:"required,oneof=pickup shipping"`
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

// Service handles checkout and order lookups.
type Service struct {
	gw       *txn.Gateway
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a new orders service.
func NewService(gw *txn.Gateway, logger *zap.Logger) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
		logger:   logger,
	}
}

// Checkout validates the request, snapshots product name and price into
// immutable line items, and creates a pending order. Stock is checked but
// never decremented here; stock only moves when the POS reports it moved.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		Reference:     uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Fulfillment:   req.Fulfillment,
		Status:        StatusPending,
	}

	err := s.gw.Transaction(ctx, func(tx *gorm.DB) error {
		for _, line := range req.Items {
			var product catalogmodels.Product
			err := tx.First(&product, "id = ?", line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownProduct, line.ProductID)
			}
			if err != nil {
				return fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
			}
			if product.StockCount < line.Quantity {
				return fmt.Errorf("%w: %s has %d, requested %d",
					ErrInsufficientStock, product.ID, product.StockCount, line.Quantity)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID:      product.ID,
				Name:           product.Name,
				UnitPriceCents: product.PriceCents,
				Quantity:       line.Quantity,
			})
			order.TotalCents += product.PriceCents * int64(line.Quantity)
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("reference", order.Reference),
		zap.Int("lines", len(order.Items)),
		zap.Int64("total_cents", order.TotalCents))
	return order, nil
}

// ByReference loads one order with its line items.
func (s *Service) ByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := s.gw.DB().WithContext(ctx).Preload("Items").First(&order, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", reference, err)
	}
	return &order, nil
}
