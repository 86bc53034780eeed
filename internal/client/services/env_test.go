package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/trustcart/internal/client/apitest"
	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/media"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type testEnv struct {
	api     *apitest.Server
	client  *client.HTTPClient
	store   *metadata.TokenStore
	session *session.Session
	notes   *notify.Recorder
	images  *media.Loader
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := metadata.NewTokenStore(db)
	api := apitest.New(t)
	c, err := client.NewHTTPClient(api.URL(), store)
	require.NoError(t, err)

	return &testEnv{
		api:     api,
		client:  c,
		store:   store,
		session: session.New(c, store, logging.Discard()),
		notes:   &notify.Recorder{},
		images:  media.NewLoader(media.S3Config{}),
	}
}

// signIn logs the session in as a user with role.
func (e *testEnv) signIn(t *testing.T, role string) {
	t.Helper()
	user := gin.H{"_id": "u1", "name": "Ann", "email": "ann@example.com", "role": role}
	e.api.Handle(http.MethodPost, "/users/signin", http.StatusOK, apitest.Token("tok-"+role, user))
	e.api.Handle(http.MethodGet, "/users/me", http.StatusOK, apitest.Data("user", user))
	require.NoError(t, e.session.Login(context.Background(), forms.LoginInput{Email: "ann@example.com", Password: "password1"}))
}

func (e *testEnv) lastNote(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := e.notes.Last()
	require.True(t, ok, "expected a notification")
	return n
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("\x89PNG"), 0o600))
	return p
}
