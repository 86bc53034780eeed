package client

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

	"github.com/dmitrijs2005/trustcart/internal/logging"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 8 << 20

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Its transport is
// wrapped with the bearer transport.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		cp := *c
		h.http = &cp
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:8000/api/v1"). Every request reads its bearer
// token from tokens.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	h := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}

	base := h.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	h.http.Transport = &bearerTransport{base: base, tokens: tokens, log: h.log}
	return h, nil
}

// endpoint joins path segments onto the base URL, escaping each one.
func (h *HTTPClient) endpoint(query url.Values, segments ...string) string {
	u := *h.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = h.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = h.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

type request struct {
	method      string
	segments    []string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// do sends r and decodes the envelope. A nil envelope is returned for
// bodyless responses (204 or empty).
func (h *HTTPClient) do(ctx context.Context, r request) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, h.endpoint(r.query, r.segments...), r.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", r.method, req.URL.Path, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, r.method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &env, nil
}

// doData is do for endpoints that must return a body.
func (h *HTTPClient) doData(ctx context.Context, r request) (*envelope, error) {
	env, err := h.do(ctx, r)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	return env, nil
}

// doJSON sends v as a JSON body.
func (h *HTTPClient) doJSON(ctx context.Context, method string, v any, segments ...string) (*envelope, error) {
	body, ct, err := jsonBody(v)
	if err != nil {
		return nil, err
	}
	return h.do(ctx, request{method: method, segments: segments, body: body, contentType: ct})
}

func (h *HTTPClient) get(ctx context.Context, query url.Values, segments ...string) (*envelope, error) {
	return h.doData(ctx, request{method: http.MethodGet, segments: segments, query: query})
}

func (h *HTTPClient) delete(ctx context.Context, segments ...string) error {
	_, err := h.do(ctx, request{method: http.MethodDelete, segments: segments})
	return err
}

// IsClientError reports whether err is a 4xx API error.
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

// withBody rejects a bodyless success for calls that must echo a record.
func withBody(env *envelope, err error) (*envelope, error) {
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	return env, nil
}
