package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"btcwallet/internal/domain"

	"github.com/jonboulle/clockwork"
)

// CoindeskClient fetches the BTC/USD rate. It keeps no state between calls,
// so a single instance can serve any number of pollers.
type CoindeskClient struct {
	http    *http.Client
	url     string
	timeout time.Duration
	clock   clockwork.Clock
}

type apiResponse struct {
	Bpi *struct {
		USD *struct {
			RateFloat *float64 `json:"rate_float"`
		} `json:"USD"`
	} `json:"bpi"`
}

func (c *CoindeskClient) Fetch(ctx context.Context) (domain.RateQuote, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: failed to create request: %w", domain.ErrNetwork, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: failed to execute request: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateQuote{}, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrNetwork, resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctx.Err() != nil {
			return domain.RateQuote{}, fmt.Errorf("%w: failed to read response: %w", domain.ErrNetwork, err)
		}
		return domain.RateQuote{}, fmt.Errorf("%w: failed to decode response: %w", domain.ErrDecode, err)
	}

	if body.Bpi == nil || body.Bpi.USD == nil || body.Bpi.USD.RateFloat == nil {
		return domain.RateQuote{}, fmt.Errorf("%w: bpi.USD.rate_float is missing", domain.ErrDecode)
	}

	rate := *body.Bpi.USD.RateFloat
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return domain.RateQuote{}, fmt.Errorf("%w: rate must be positive, got %v", domain.ErrDecode, rate)
	}

	return domain.RateQuote{Rate: rate, ObservedAt: c.clock.Now()}, nil
}

// NewCoindeskClient builds a fetcher for url. A positive timeout bounds every
// call on top of whatever the transport enforces.
func NewCoindeskClient(httpClient *http.Client, url string, timeout time.Duration, clock clockwork.Clock) *CoindeskClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CoindeskClient{http: httpClient, url: url, timeout: timeout, clock: clock}
}
