package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Priority classifies how urgently an operator should look at an alert.
type Priority string

const (
	PriorityInfo     Priority = "info"
	PriorityWarning  Priority = "warning"
	PriorityCritical Priority = "critical"
)

// Message is the structured payload delivered to the chat sink.
type Message struct {
	// Title is the short headline shown in the channel.
	Title string `json:"title"`
	// Priority classifies the alert.
	Priority Priority `json:"priority"`
	// RayID correlates the alert with request logs.
	RayID string `json:"ray_id,omitempty"`
	// Subject identifies the affected entity (product id, order reference).
	Subject string `json:"subject,omitempty"`
	// Body is free-text context for the operator.
	Body string `json:"body,omitempty"`
	// Action is the recommended operator action.
	Action string `json:"action,omitempty"`
	// Fields carries additional key/value context.
	Fields map[string]string `json:"fields,omitempty"`
	// Links are URLs relevant to the alert (dashboards, order pages).
	Links []string `json:"links,omitempty"`
}

// Notifier delivers operator alerts. Implementations must be fire-and-forget:
// Notify never returns an error and must not block the caller beyond the
// configured delivery timeout.
type Notifier interface {
	Notify(ctx context.Context, m Message)
}

// Sink posts alert messages to a chat webhook. Delivery failures are logged
// and swallowed; an unreachable sink must never affect request handling.
type Sink struct {
	cfg    Config
	logger *zap.Logger
	client *http.Client
}

// NewSink creates an alert sink from configuration.
func NewSink(cfg Config, logger *zap.Logger) *Sink {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	return &Sink{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Notify formats and best-effort-delivers an alert message.
func (s *Sink) Notify(ctx context.Context, m Message) {
	l := s.logger.With(
		zap.String("alert_title", m.Title),
		zap.String("alert_priority", string(m.Priority)),
		zap.String("alert_subject", m.Subject),
		zap.String("ray_id", m.RayID),
	)

	if s.cfg.WebhookURL == "" {
		l.Warn("Alert raised (no sink configured)", zap.String("body", m.Body))
		return
	}

	payload := struct {
		Channel string `json:"channel,omitempty"`
		Message
	}{Channel: s.cfg.Channel, Message: m}

	body, err := json.Marshal(payload)
	if err != nil {
		l.Error("Failed to encode alert message", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		l.Error("Failed to build alert request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		l.Error("Alert delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		l.Error("Alert sink rejected message", zap.Int("status", resp.StatusCode))
		return
	}

	l.Info("Alert delivered")
}

// Nop is a Notifier that discards all messages. Used in tests and when
// alerting is intentionally disabled.
type Nop struct{}

func (Nop) Notify(context.Context, Message) {}

var (
	_ Notifier = (*Sink)(nil)
	_ Notifier = Nop{}
)
