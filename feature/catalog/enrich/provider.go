package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Metadata is the supplementary information the provider returns for a
// catalog item. All fields are additive; nothing in the core product record
// depends on them.
type Metadata struct {
	ProviderID  string `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Vendor      string `json:"vendor"`
}

// Provider looks up supplementary metadata for catalog items. The provider
// is rate-sensitive and flaky; callers must treat every error as "skip
// enrichment", never as a reason to fail the triggering request.
type Provider interface {
	// LookupByName searches the provider by item name and returns the
	// best match, or an error when there is none.
	LookupByName(ctx context.Context, name string) (*Metadata, error)
	// FetchByID fetches a known provider record.
	FetchByID(ctx context.Context, id string) (*Metadata, error)
}

// HTTPProvider talks to the metadata provider's REST API with a bearer
// credential. A circuit breaker keeps a dead provider from eating the
// enrichment timeout on every new catalog item.
type HTTPProvider struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPProvider creates a provider client from configuration.
func NewHTTPProvider(cfg Config) *HTTPProvider {
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	return &HTTPProvider{
		cfg: cfg,
		// The dispatcher bounds each attempt; this is a backstop only.
		client: &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "metadata-provider",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(failures)
			},
		}),
	}
}

// LookupByName searches the provider and returns the first result.
func (p *HTTPProvider) LookupByName(ctx context.Context, name string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&limit=1", p.cfg.BaseURL, url.QueryEscape(name))

	var results struct {
		Results []Metadata `json:"results"`
	}
	if err := p.get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	if len(results.Results) == 0 {
		return nil, fmt.Errorf("no metadata match for %q", name)
	}
	return &results.Results[0], nil
}

// FetchByID fetches one provider record by its id.
func (p *HTTPProvider) FetchByID(ctx context.Context, id string) (*Metadata, error) {
	var meta Metadata
	if err := p.get(ctx, fmt.Sprintf("%s/items/%s", p.cfg.BaseURL, url.PathEscape(id)), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (p *HTTPProvider) get(ctx context.Context, endpoint string, out any) error {
	_, err := p.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
		req.Header.Set("Accept", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}

var _ Provider = (*HTTPProvider)(nil)
