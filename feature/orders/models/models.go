package models

import "time"

// Order aggregates a customer, a fulfillment method, totals, and a status.
// Status moves only forward (see orders.CanTransition); the POS order id is
// the externally-assigned identifier webhook events reference.
type Order struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;uniqueIndex" json:"reference"`
	PosOrderID    string    `gorm:"column:pos_order_id;index" json:"pos_order_id"`
	CustomerName  string    `gorm:"column:customer_name" json:"customer_name"`
	CustomerEmail string    `gorm:"column:customer_email" json:"customer_email"`
	Fulfillment   string    `gorm:"column:fulfillment" json:"fulfillment"`
	Status        string    `gorm:"column:status" json:"status"`
	PaymentID     string    `gorm:"column:payment_id" json:"payment_id"`
	TotalCents    int64     `gorm:"column:total_cents" json:"total_cents"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName overrides the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable line snapshot taken at order-creation time.
// Name and unit price are copied from the product so later catalog changes
// never rewrite an existing order.
type OrderItem struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID        uint      `gorm:"column:order_id;index" json:"order_id"`
	ProductID      string    `gorm:"column:product_id" json:"product_id"`
	Name           string    `gorm:"column:name" json:"name"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents" json:"unit_price_cents"`
	Quantity       int       `gorm:"column:quantity" json:"quantity"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
