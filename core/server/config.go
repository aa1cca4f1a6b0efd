package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the storefront/admin API.
	// Webhook routes are authenticated by signature instead.
	ApiKey string `mapstructure:"api_key" default:""`
	// SeedFile is the path to the initial catalog seed file used by the
	// load command.
	SeedFile string `mapstructure:"seed_file" default:"catalog_seed.json"`
}
