// Package osm talks to the public OpenStreetMap services: Overpass for
// nearby POIs and Nominatim for free-text place search.
package osm

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default endpoints
const (
	DefaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent    = "CrowdHeatmapApp/1.0"
)

// ErrUpstream is returned when an OSM service cannot be reached or answers
// with something unusable.
var ErrUpstream = eris.New("osm: upstream request failed")

// Option configures an OSM client.
type Option func(*base)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *base) {
		b.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithRateLimit sets the maximum requests per second. The public OSM
// instances ask for at most one.
func WithRateLimit(rps float64) Option {
	return func(b *base) {
		if rps <= 0 {
			b.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header. Nominatim rejects requests
// without one.
func WithUserAgent(ua string) Option {
	return func(b *base) {
		if ua != "" {
			b.userAgent = ua
		}
	}
}

type base struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgent  string
}

func newBase(endpoint string, timeout time.Duration, opts []Option) base {
	b := base{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(1, 1),
		timeout:    timeout,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// do waits for the limiter, sends req with the client timeout applied and
// returns the body of a 200 response. The caller closes it.
func (b *base) do(ctx context.Context, req *http.Request, service string) (io.ReadCloser, context.CancelFunc, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, nil, eris.Wrapf(err, "%s: rate limit wait", service)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, eris.Wrapf(ErrUpstream, "%s: %v", service, err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		cancel()
		return nil, nil, eris.Wrapf(ErrUpstream, "%s: status %d: %s", service, resp.StatusCode, snippet)
	}

	return resp.Body, cancel, nil
}
