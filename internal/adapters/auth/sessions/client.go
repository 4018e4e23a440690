package sessions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/platform/httpclient"
	"github.com/FCP2/Secretario-invitaciones/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("sessions client not configured")
	ErrUnauthorized  = errors.New("session unauthorized")
	ErrUpstream      = errors.New("sessions upstream error")
)

const verifyPath = "/v1/sessions/verify"

// Config del cliente del servicio de sesiones.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http       *httpclient.Client
	configured bool
}

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	header := http.Header{}
	if key != "" {
		header.Set(h, key)
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Header:  header,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		http:       hc,
		configured: hc.BaseURL() != "" && key != "",
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// VerifyToken pregunta al servicio de sesiones por el dueño del token.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var out verifyResponse
	if err := c.http.PostJSON(ctx, verifyPath, header, map[string]string{"token": token}, &out); err != nil {
		switch status := httpclient.StatusOf(err); status {
		case 0:
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, ErrUnauthorized
		default:
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, status)
		}
	}

	return auth.Claims{
		UserID:   strings.TrimSpace(out.UserID),
		Username: strings.TrimSpace(out.Username),
		Role:     strings.ToLower(strings.TrimSpace(out.Role)),
	}, nil
}
