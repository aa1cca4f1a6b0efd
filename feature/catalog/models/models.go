package models

import "time"

// Product is the authoritative catalog row. StockCount is mutated only by
// the reconciliation engine inside a locked transaction; read paths treat it
// as read-only. It reflects the most recently applied notification, which
// under out-of-order delivery is not necessarily the most recently sent one.
type Product struct {
	// ID is the canonical catalog identifier assigned by the POS.
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name" json:"name"`
	PriceCents int64     `gorm:"column:price_cents" json:"price_cents"`
	Category   string    `gorm:"column:category" json:"category"`
	StockCount int       `gorm:"column:stock_count" json:"stock_count"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// Audit reasons for inventory changes.
const (
	ReasonRestock     = "restock"
	ReasonSale        = "sale"
	ReasonManualSync  = "manual-sync"
	ReasonInitialLoad = "initial-load"
)

// InventoryAudit is one append-only row per applied inventory change,
// including zero-change synchronization markers. Rows are never updated or
// deleted. QuantityChange is derived (new minus previous) purely for
// reporting; the authoritative column is products.stock_count.
type InventoryAudit struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID      string    `gorm:"column:product_id;index" json:"product_id"`
	QuantityChange int       `gorm:"column:quantity_change" json:"quantity_change"`
	Reason         string    `gorm:"column:reason" json:"reason"`
	Notes          string    `gorm:"column:notes" json:"notes"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name; the audit table is named after the
// concern, not the struct.
func (InventoryAudit) TableName() string {
	return "inventory"
}

// CacheEntry is a row in the generic key/value cache table. The catalog
// snapshot blob lives under cache.CatalogKey. Entries are overwritten
// wholesale and are never the system of record.
type CacheEntry struct {
	Key       string    `gorm:"column:cache_key;primaryKey" json:"key"`
	Value     string    `gorm:"column:cache_value;type:longtext" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (CacheEntry) TableName() string {
	return "cache"
}

// ProductMeta is persisted enrichment for a catalog item, keyed by product
// so a later delivery for the same subject skips the provider call. Core
// product fields never depend on it.
type ProductMeta struct {
	ProductID   string    `gorm:"column:product_id;primaryKey" json:"product_id"`
	ProviderID  string    `gorm:"column:provider_id" json:"provider_id"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	Vendor      string    `gorm:"column:vendor" json:"vendor"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (ProductMeta) TableName() string {
	return "product_meta"
}
