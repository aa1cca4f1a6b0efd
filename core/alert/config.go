package alert

// Config holds configuration for the operator alert sink.
type Config struct {
	// WebhookURL is the chat webhook messages are posted to.
	// When empty, alerts are logged locally and delivery is skipped.
	WebhookURL string `mapstructure:"webhook_url" default:""`
	// Channel is an optional routing hint included in the message body.
	Channel string `mapstructure:"channel" default:"ops"`
	// TimeoutSeconds bounds the outbound delivery attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
