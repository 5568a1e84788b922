package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unidomus/internal/pkg/retry"
)

func fastClient(baseURL string) *Client {
	c := New(baseURL)
	c.retryCfg = &retry.Config{
		MaxAttempts:       2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 1.0,
	}
	return c
}

func TestClient_Forward_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Via Roma 12A, 38122, Trento, TN, Italy", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "unidomus-backend", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"46.0667","lon":"11.1167"}]`))
	}))
	defer srv.Close()

	lat, lon, err := fastClient(srv.URL).Forward(context.Background(), "Via Roma 12A, 38122, Trento, TN, Italy")

	require.NoError(t, err)
	assert.InDelta(t, 46.0667, lat, 0.0001)
	assert.InDelta(t, 11.1167, lon, 0.0001)
}

func TestClient_Forward_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, _, err := fastClient(srv.URL).Forward(context.Background(), "Nowhere 0")

	assert.ErrorIs(t, err, ErrNoResult)
}

func TestClient_Forward_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"lat":"45.4384","lon":"10.9916"}]`))
	}))
	defer srv.Close()

	lat, _, err := fastClient(srv.URL).Forward(context.Background(), "Via Mazzini 3, Verona")

	require.NoError(t, err)
	assert.InDelta(t, 45.4384, lat, 0.0001)
	assert.Equal(t, 2, calls)
}

func TestClient_Forward_BadCoordinatePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"11.1167"}]`))
	}))
	defer srv.Close()

	_, _, err := fastClient(srv.URL).Forward(context.Background(), "Via Roma")

	assert.Error(t, err)
}
