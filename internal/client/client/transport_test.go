package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type failingToken struct{ err error }

func (f failingToken) Token(context.Context) (string, error) { return "", f.err }

type captureRT struct {
	got *http.Request
}

func (c *captureRT) RoundTrip(r *http.Request) (*http.Response, error) {
	c.got = r
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusNoContent)
	return rec.Result(), nil
}

func TestBearerTransport_SetsAuthorizationWhenTokenPresent(t *testing.T) {
	base := &captureRT{}
	tr := &bearerTransport{base: base, tokens: staticToken("abc"), log: logging.Discard()}

	req := httptest.NewRequest(http.MethodGet, "http://api.test/users/me", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.NotNil(t, base.got)
	assert.Equal(t, "Bearer abc", base.got.Header.Get(common.AuthorizationHeaderName))
	assert.Empty(t, req.Header.Get(common.AuthorizationHeaderName), "caller request must not be mutated")
}

func TestBearerTransport_RemovesAuthorizationWhenNoToken(t *testing.T) {
	base := &captureRT{}
	tr := &bearerTransport{base: base, tokens: staticToken(""), log: logging.Discard()}

	req := httptest.NewRequest(http.MethodGet, "http://api.test/products", nil)
	req.Header.Set(common.AuthorizationHeaderName, "Bearer stale")

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	_, present := base.got.Header[common.AuthorizationHeaderName]
	assert.False(t, present)
}

func TestBearerTransport_AddsRequestID(t *testing.T) {
	old := newRequestID
	newRequestID = func() string { return "req-1" }
	t.Cleanup(func() { newRequestID = old })

	base := &captureRT{}
	tr := &bearerTransport{base: base, tokens: staticToken(""), log: logging.Discard()}

	resp, err := tr.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/brands", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-1", base.got.Header.Get(common.RequestIDHeaderName))

	// an explicit id is kept
	req := httptest.NewRequest(http.MethodGet, "http://api.test/brands", nil)
	req.Header.Set(common.RequestIDHeaderName, "mine")
	resp, err = tr.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "mine", base.got.Header.Get(common.RequestIDHeaderName))
}

func TestBearerTransport_TokenSourceError(t *testing.T) {
	boom := errors.New("db locked")
	base := &captureRT{}
	tr := &bearerTransport{base: base, tokens: failingToken{err: boom}, log: logging.Discard()}

	_, err := tr.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/users/me", nil))
	require.ErrorIs(t, err, boom)
	assert.Nil(t, base.got, "no request may go out without consulting the token")
}
