package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBody = 1 << 20
)

var ErrNoBaseURL = errors.New("httpclient: base url not set")

// Options del cliente. Header se manda en todas las llamadas.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Header    http.Header
	Transport http.RoundTripper // tests
}

// Client habla JSON con un solo servicio.
type Client struct {
	http    *http.Client
	baseURL string
	header  http.Header
}

func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base != "" {
		u, err := url.ParseRequestURI(base)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("httpclient: invalid base url %q", opts.BaseURL)
		}
	}

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: opts.Transport},
		baseURL: base,
		header:  opts.Header.Clone(),
	}, nil
}

func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Request describe una llamada; Body y Out son opcionales.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   any
	Out    any
}

// HTTPError es cualquier respuesta fuera de 2xx.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("httpclient: status %d", e.Status)
	}
	return fmt.Sprintf("httpclient: status %d: %s", e.Status, e.Body)
}

// StatusOf regresa el status de un *HTTPError o 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

func (c *Client) PostJSON(ctx context.Context, path string, header http.Header, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Header: header, Body: body, Out: out})
}

func (c *Client) GetJSON(ctx context.Context, path string, header http.Header, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Header: header, Out: out})
}

func (c *Client) Do(ctx context.Context, r Request) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}
	if c.baseURL == "" {
		return ErrNoBaseURL
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+"/"+strings.TrimLeft(r.Path, "/"), body)
	if err != nil {
		return fmt.Errorf("httpclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range []http.Header{c.header, r.Header} {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Set(k, v)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if r.Out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, r.Out); err != nil {
		return fmt.Errorf("httpclient: decode body: %w", err)
	}
	return nil
}
