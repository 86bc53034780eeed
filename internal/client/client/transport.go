package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/google/uuid"
)

// newRequestID is a test seam for uuid generation.
var newRequestID = func() string { return uuid.NewString() }

// bearerTransport attaches "Authorization: Bearer <token>" to every request
// when the token source has a token, and strips the header when it has
// none. Responses pass through untouched.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	// RoundTrippers must not mutate the caller's request.
	r := req.Clone(ctx)
	if token != "" {
		r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, newRequestID())
	}

	log := t.log.With("request_id", r.Header.Get(common.RequestIDHeaderName), "method", r.Method, "path", r.URL.Path)

	start := time.Now()
	resp, err := t.base.RoundTrip(r)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err, "authenticated", token != "")
		return nil, err
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start), "authenticated", token != "")
	return resp, nil
}
