package pos

import "strings"

// Webhook channels, each with its own route and secret.
const (
	ChannelInventory = "inventory"
	ChannelOrders    = "orders"
	ChannelCatalog   = "catalog"
)

// Config holds configuration for the POS webhook intake.
type Config struct {
	// Secret is the shared fallback secret used when a channel has no
	// secret of its own.
	Secret string `mapstructure:"secret" default:""`
	// InventorySecret signs the inventory channel.
	InventorySecret string `mapstructure:"inventory_secret" default:""`
	// OrderSecret signs the orders channel.
	OrderSecret string `mapstructure:"order_secret" default:""`
	// CatalogSecret signs the catalog channel.
	CatalogSecret string `mapstructure:"catalog_secret" default:""`
	// NotificationBaseURL is the externally visible base URL the sender
	// signs url+body signatures against (e.g. https://shop.example).
	// It cannot be derived from the inbound request behind a proxy.
	NotificationBaseURL string `mapstructure:"notification_base_url" default:""`
}

// SecretFor returns the signing secret for a channel. Precedence is the
// channel-specific secret first, then the shared Secret.
func (c Config) SecretFor(channel string) string {
	switch channel {
	case ChannelInventory:
		if c.InventorySecret != "" {
			return c.InventorySecret
		}
	case ChannelOrders:
		if c.OrderSecret != "" {
			return c.OrderSecret
		}
	case ChannelCatalog:
		if c.CatalogSecret != "" {
			return c.CatalogSecret
		}
	}
	return c.Secret
}

// NotificationURL returns the exact URL the sender signed for a channel
// route.
func (c Config) NotificationURL(path string) string {
	return strings.TrimSuffix(c.NotificationBaseURL, "/") + path
}
