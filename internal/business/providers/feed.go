package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/business-hours/internal/business"
)

// DefaultBaseURL is the public bucket the schedule documents live in.
const DefaultBaseURL = "https://purs-demo-bucket-test.s3.us-west-2.amazonaws.com/"

// HTTPFeedProvider implements the business.Provider interface for a schedule
// document served over HTTP(S).
type HTTPFeedProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPFeedProvider builds a provider that fetches {baseURL}/{location path}.
// A zero Backoff in cfg is replaced with DefaultBackoff.
func NewHTTPFeedProvider(cfg HTTPClientConfig, baseURL string) *HTTPFeedProvider {
	if cfg.Backoff == (BackoffConfig{}) {
		cfg.Backoff = DefaultBackoff
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "schedule-feed",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPFeedProvider{
		name:    "http",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: cb,
	}
}

func (p *HTTPFeedProvider) Name() string {
	return p.name
}

func (p *HTTPFeedProvider) Fetch(ctx context.Context, loc business.Location) (business.Feed, error) {
	u, err := url.JoinPath(p.baseURL, loc.Path)
	if err != nil {
		return business.Feed{}, fmt.Errorf("feed url for %s: %w", loc.Key, err)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return business.Feed{}, err
	}
	defer resp.Body.Close()

	return decodeFeed(resp.Body)
}
