package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleScope       = "https://www.googleapis.com/auth/cloud-platform"
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime = time.Hour

	// Refresh this far before the cached token actually expires.
	tokenRefreshMargin = 5 * time.Minute
)

// serviceAccount is the subset of a Google service-account key file
// needed for the JWT-bearer exchange.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// tokenSource exchanges a signed service-account assertion for a
// short-lived access token and caches it process-wide. The mutex keeps
// concurrent callers from racing a refresh; tokens are interchangeable,
// so last-write-wins is fine. The token is never handed to API callers
// and never written to disk.
type tokenSource struct {
	keyPath    string
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenSource(keyPath string) *tokenSource {
	return &tokenSource{
		keyPath:    keyPath,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Token returns the cached access token, refreshing it when absent or
// within the safety margin of expiry.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Before(ts.expiresAt.Add(-tokenRefreshMargin)) {
		return ts.token, nil
	}

	token, expiresAt, err := ts.exchange(ctx)
	if err != nil {
		return "", err
	}
	ts.token = token
	ts.expiresAt = expiresAt
	return token, nil
}

func (ts *tokenSource) exchange(ctx context.Context) (string, time.Time, error) {
	data, err := os.ReadFile(ts.keyPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read service account key: %w", err)
	}

	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return "", time.Time{}, fmt.Errorf("parse service account key: %w", err)
	}
	if sa.TokenURI == "" {
		sa.TokenURI = googleTokenURL
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse service account private key: %w", err)
	}

	issuedAt := ts.now()
	claims := jwt.MapClaims{
		"iss":   sa.ClientEmail,
		"aud":   sa.TokenURI,
		"scope": googleScope,
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(assertionLifetime).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sa.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", time.Time{}, fmt.Errorf("token exchange failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("token exchange returned no access token")
	}

	return tr.AccessToken, ts.now().Add(time.Duration(tr.ExpiresIn) * time.Second), nil
}
