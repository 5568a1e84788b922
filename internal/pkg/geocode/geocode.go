package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"unidomus/internal/pkg/retry"
)

var ErrNoResult = errors.New("geocode: no result for address")

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Forward(ctx context.Context, address string) (lat, lon float64, err error)
}

// Client is a Nominatim-style forward geocoding client. Calls are bounded by
// the HTTP client timeout and retried with backoff; callers treat failures as
// non-fatal.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   *retry.Config
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		retryCfg: retry.DefaultConfig(),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type pair struct {
	lat, lon float64
}

func (c *Client) Forward(ctx context.Context, address string) (float64, float64, error) {
	p, err := retry.Do(ctx, c.retryCfg, "geocode", func(ctx context.Context) (pair, error) {
		return c.forwardOnce(ctx, address)
	})
	if err != nil {
		return 0, 0, err
	}
	return p.lat, p.lon, nil
}

func (c *Client) forwardOnce(ctx context.Context, address string) (pair, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return pair{}, err
	}
	req.Header.Set("User-Agent", "unidomus-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pair{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pair{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return pair{}, err
	}
	if len(results) == 0 {
		return pair{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return pair{}, fmt.Errorf("geocode: bad latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return pair{}, fmt.Errorf("geocode: bad longitude %q", results[0].Lon)
	}
	return pair{lat: lat, lon: lon}, nil
}
