package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
	"github.com/dmitrijs2005/trustcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	signInRes *client.SignInResult
	signInErr error
	me        *models.User
	meErr     error
	meCalls   int
}

func (f *fakeAPI) SignIn(context.Context, string, string) (*client.SignInResult, error) {
	return f.signInRes, f.signInErr
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	f.meCalls++
	return f.me, f.meErr
}

func newStore(t *testing.T) *metadata.TokenStore {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return metadata.NewTokenStore(db)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1", "exp": exp.Unix()}).
		SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestDiscover_NoToken(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, newStore(t), logging.Discard())

	require.NoError(t, s.Discover(context.Background()))
	assert.Equal(t, Snapshot{Status: Anonymous}, s.Snapshot())
	assert.Equal(t, 0, api.meCalls)
}

func TestDiscover_ValidToken(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SetToken(ctx, signed(t, time.Now().Add(time.Hour)), "ann@example.com"))

	api := &fakeAPI{me: &models.User{ID: "u1", Role: models.RoleUser}}
	s := New(api, store, logging.Discard())

	require.NoError(t, s.Discover(ctx))
	snap := s.Snapshot()
	assert.Equal(t, Authenticated, snap.Status)
	assert.Equal(t, models.RoleUser, snap.Role())
}

func TestDiscover_ExpiredTokenSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SetToken(ctx, signed(t, time.Now().Add(-time.Minute)), ""))

	api := &fakeAPI{me: &models.User{ID: "u1"}}
	s := New(api, store, logging.Discard())

	err := s.Discover(ctx)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.Equal(t, 0, api.meCalls)
	assert.Equal(t, Anonymous, s.Snapshot().Status)

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestDiscover_OpaqueTokenIsAskedAbout(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SetToken(ctx, "not-a-jwt", ""))

	api := &fakeAPI{meErr: &client.APIError{Status: 401, Message: "Invalid token"}}
	s := New(api, store, logging.Discard())

	err := s.Discover(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, 1, api.meCalls)
	assert.Equal(t, Anonymous, s.Snapshot().Status)

	tok, _ := store.Token(ctx)
	assert.Empty(t, tok)
}

func TestLogin_StoresTokenAndResolvesUser(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	api := &fakeAPI{
		signInRes: &client.SignInResult{Token: "tok-1"},
		me:        &models.User{ID: "u1", Name: "Ann", Role: models.RoleAdmin},
	}
	s := New(api, store, logging.Discard())

	require.NoError(t, s.Login(ctx, forms.LoginInput{Email: "ann@example.com", Password: "password1"}))

	tok, _ := store.Token(ctx)
	assert.Equal(t, "tok-1", tok)
	email, _ := store.LastEmail(ctx)
	assert.Equal(t, "ann@example.com", email)
	assert.NoError(t, s.Require(models.RoleAdmin))
}

func TestLogin_FailureLeavesAnonymous(t *testing.T) {
	api := &fakeAPI{signInErr: &client.APIError{Status: 401, Message: "Incorrect email or password"}}
	s := New(api, newStore(t), logging.Discard())

	err := s.Login(context.Background(), forms.LoginInput{Email: "a@b.co", Password: "password1"})
	require.Error(t, err)
	assert.Equal(t, Anonymous, s.Snapshot().Status)
}

func TestRefreshFailureEndsSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	api := &fakeAPI{signInRes: &client.SignInResult{Token: "tok"}, me: &models.User{ID: "u1", Role: models.RoleUser}}
	s := New(api, store, logging.Discard())
	require.NoError(t, s.Login(ctx, forms.LoginInput{Email: "a@b.co", Password: "password1"}))

	api.meErr = client.ErrUnavailable
	require.ErrorIs(t, s.Refresh(ctx), client.ErrUnavailable)
	assert.Equal(t, Anonymous, s.Snapshot().Status)
	require.ErrorIs(t, s.Refresh(ctx), ErrLoginRequired)
}

func TestLogoutAndAccountDeleted(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	api := &fakeAPI{signInRes: &client.SignInResult{Token: "tok"}, me: &models.User{ID: "u1", Role: models.RoleUser}}
	s := New(api, store, logging.Discard())

	for _, end := range []func(context.Context) error{s.Logout, s.AccountDeleted} {
		require.NoError(t, s.Login(ctx, forms.LoginInput{Email: "a@b.co", Password: "password1"}))
		require.NoError(t, end(ctx))

		assert.Equal(t, Anonymous, s.Snapshot().Status)
		tok, _ := store.Token(ctx)
		assert.Empty(t, tok)
	}
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{signInRes: &client.SignInResult{Token: "tok"}, me: &models.User{ID: "u1", Role: models.RoleUser}}
	s := New(api, newStore(t), logging.Discard())

	assert.ErrorIs(t, s.Require(), ErrLoginRequired)

	require.NoError(t, s.Login(ctx, forms.LoginInput{Email: "a@b.co", Password: "password1"}))
	assert.NoError(t, s.Require())
	assert.NoError(t, s.Require(models.RoleUser, models.RoleAdmin))
	assert.ErrorIs(t, s.Require(models.RoleAdmin), ErrLoginRequired)
}

func TestSetUserAndSnapshotCopy(t *testing.T) {
	s := New(&fakeAPI{}, newStore(t), logging.Discard())
	u := &models.User{ID: "u1", Name: "Ann"}
	s.SetUser(context.Background(), u)
	u.Name = "changed"

	snap := s.Snapshot()
	assert.Equal(t, "Ann", snap.User.Name)
	snap.User.Name = "again"
	assert.Equal(t, "Ann", s.Snapshot().User.Name)
}

func TestTokenExpired(t *testing.T) {
	old := now
	now = func() time.Time { return time.Unix(1_000, 0) }
	t.Cleanup(func() { now = old })

	assert.True(t, tokenExpired(signed(t, time.Unix(999, 0))))
	assert.False(t, tokenExpired(signed(t, time.Unix(2_000, 0))))
	assert.False(t, tokenExpired("garbage"))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, tokenExpired(noExp))
}

