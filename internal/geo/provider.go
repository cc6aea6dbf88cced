package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

// DefaultProviderURL is an IP geolocation endpoint returning JSON.
const DefaultProviderURL = "https://ipapi.co/json/"

// Provider performs the raw lookup. Errors that are not *Error are treated
// as PositionUnavailable by the Locator.
type Provider interface {
	Locate(ctx context.Context, opts Options) (Position, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, opts Options) (Position, error)

func (f ProviderFunc) Locate(ctx context.Context, opts Options) (Position, error) {
	return f(ctx, opts)
}

// Accuracy radii for IP lookups, in meters.
const (
	cityAccuracy    = 5_000
	countryAccuracy = 100_000
)

// HTTPProvider resolves the position of the caller's public IP address.
type HTTPProvider struct {
	url  string
	http *http.Client
	now  func() time.Time
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider for url (DefaultProviderURL when empty).
// hc may be nil.
func NewHTTPProvider(url string, hc *http.Client) *HTTPProvider {
	if url == "" {
		url = DefaultProviderURL
	}
	if hc == nil {
		hc = &http.Client{Transport: http.DefaultTransport}
	}
	return &HTTPProvider{url: url, http: hc, now: time.Now}
}

type ipapiResponse struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryName string   `json:"country_name"`
	Error       bool     `json:"error"`
	Reason      string   `json:"reason"`
}

// Locate implements Provider. High accuracy cannot be honored by an IP
// lookup; the reported Accuracy reflects what was resolved.
func (p *HTTPProvider) Locate(ctx context.Context, opts Options) (Position, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String(tracing.AttrHTTPURL, p.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return Position{}, &Error{Kind: PositionUnavailable, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, &Error{Kind: Timeout, Err: err}
		}
		return Position{}, &Error{Kind: PositionUnavailable, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatusCode, resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Position{}, &Error{Kind: PositionUnavailable, Err: fmt.Errorf("GET %s: unexpected status %d", p.url, resp.StatusCode)}
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, &Error{Kind: PositionUnavailable, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if body.Error {
		return Position{}, &Error{Kind: PositionUnavailable, Err: fmt.Errorf("provider error: %s", body.Reason)}
	}
	if body.Latitude == nil || body.Longitude == nil {
		return Position{}, &Error{Kind: PositionUnavailable, Err: errors.New("provider returned no coordinates")}
	}

	accuracy := float64(countryAccuracy)
	if body.City != "" {
		accuracy = cityAccuracy
	}
	pos := Position{
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
		Accuracy:  accuracy,
		Timestamp: p.now(),
		Place:     joinPlace(body.City, body.CountryName),
	}
	log.Debug(log.CatGeo, "provider resolved position", "place", pos.Place, "high_accuracy", opts.HighAccuracy)
	return pos, nil
}

func joinPlace(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
