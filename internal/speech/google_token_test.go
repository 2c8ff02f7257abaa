package speech

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeServiceAccountKey(t *testing.T, tokenURI string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	sa := map[string]string{
		"client_email": "narrator@course-ai.iam.gserviceaccount.com",
		"private_key":  string(keyPEM),
		"token_uri":    tokenURI,
	}
	data, err := json.Marshal(sa)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "google-credentials.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func newTokenServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrant, r.Form.Get("grant_type"))
		assert.NotEmpty(t, r.Form.Get("assertion"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-abc",
			"expires_in":   3600,
		})
	}))
}

func TestTokenReusedWithinValidity(t *testing.T) {
	hits := 0
	srv := newTokenServer(t, &hits)
	defer srv.Close()

	ts := newTokenSource(writeServiceAccountKey(t, srv.URL))

	tok1, err := ts.Token(context.Background())
	require.NoError(t, err)
	tok2, err := ts.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", tok1)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, 1, hits)
}

func TestTokenRefreshedNearExpiry(t *testing.T) {
	hits := 0
	srv := newTokenServer(t, &hits)
	defer srv.Close()

	ts := newTokenSource(writeServiceAccountKey(t, srv.URL))

	now := time.Now()
	ts.now = func() time.Time { return now }

	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, hits)

	// Jump to inside the 5-minute safety margin.
	now = now.Add(3600*time.Second - 4*time.Minute)

	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestTokenMissingKeyFile(t *testing.T) {
	ts := newTokenSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := ts.Token(context.Background())
	require.Error(t, err)
}
