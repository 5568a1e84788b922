package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"unidomus/internal/pkg/retry"
)

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleTokenVerifier checks ID tokens against Google's tokeninfo endpoint.
// Verification is a network call, so it is bounded and retried like the other
// outbound collaborators.
type GoogleTokenVerifier struct {
	endpoint   string
	httpClient *http.Client
	retryCfg   *retry.Config
}

func NewGoogleTokenVerifier() *GoogleTokenVerifier {
	return &GoogleTokenVerifier{
		endpoint: tokeninfoURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		retryCfg: retry.DefaultConfig(),
	}
}

type tokeninfoResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *GoogleTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	return retry.Do(ctx, v.retryCfg, "google tokeninfo", func(ctx context.Context) (*GoogleIdentity, error) {
		return v.verifyOnce(ctx, idToken)
	})
}

func (v *GoogleTokenVerifier) verifyOnce(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	q := url.Values{}
	q.Set("id_token", idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		// A rejected token stays rejected; retrying only delays the 401.
		return nil, retry.Permanent(ErrInvalidGoogleToken)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo: unexpected status %d", resp.StatusCode)
	}

	var info tokeninfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Sub == "" || info.Email == "" || info.EmailVerified != "true" {
		return nil, retry.Permanent(ErrInvalidGoogleToken)
	}

	return &GoogleIdentity{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
