package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "7", Username: "mgarcia", Role: "Admin"})
		case "anon":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "8"})
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		case "empty":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)
	v := NewVerifier(client)
	ctx := context.Background()

	claims, err := v.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "mgarcia", claims.Username)
	assert.True(t, claims.IsAdmin())

	claims, err = v.Verify(ctx, "anon")
	require.NoError(t, err)
	assert.Equal(t, "8", claims.Username, "sin username se usa el id")

	_, err = v.Verify(ctx, "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(ctx, "broken")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(ctx, "empty")
	assert.Error(t, err)

	_, err = v.Verify(ctx, "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestVerifier_WrongAPIKey(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "otra"})
	require.NoError(t, err)

	_, err = NewVerifier(client).Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifier_NotConfigured(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, client.IsConfigured())

	_, err = NewVerifier(client).Verify(context.Background(), "good")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	var nilVerifier *Verifier
	_, err = nilVerifier.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "no es url", APIKey: "x"})
	assert.Error(t, err)
}
