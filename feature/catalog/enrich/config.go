package enrich

// Config holds configuration for the metadata enrichment provider.
type Config struct {
	// BaseURL is the provider API root. Empty disables enrichment.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the bearer credential for the provider.
	Token string `mapstructure:"token" default:""`
	// TimeoutMillis bounds one enrichment attempt; the lookup races this
	// timer and loses.
	TimeoutMillis int `mapstructure:"timeout_millis" default:"1500"`
	// BreakerFailures is the consecutive-failure count that opens the
	// circuit breaker around the provider.
	BreakerFailures int `mapstructure:"breaker_failures" default:"5"`
}
