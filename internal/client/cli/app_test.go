package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/trustcart/internal/client/apitest"
	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/media"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
	"github.com/dmitrijs2005/trustcart/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type shell struct {
	app     *App
	api     *apitest.Server
	session *session.Session
	notes   *notify.Recorder
	out     *bytes.Buffer
}

// newShell builds an App over the fake API whose prompts read input.
// Passwords are read from input too.
func newShell(t *testing.T, input string) *shell {
	t.Helper()
	stubTerminal(t, false, nil, nil)
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := metadata.NewTokenStore(db)
	api := apitest.New(t)
	c, err := client.NewHTTPClient(api.URL(), store)
	require.NoError(t, err)

	sess := session.New(c, store, logging.Discard())
	notes := &notify.Recorder{}
	images := media.NewLoader(media.S3Config{})
	out := &bytes.Buffer{}

	app := NewApp(Deps{
		Session:   sess,
		Account:   services.NewAccountService(c, sess, images, notes, ""),
		Catalog:   services.NewCatalogService(c),
		Admin:     services.NewAdminService(c, sess, images, notes),
		Reviews:   services.NewReviewService(c, sess, notes),
		Notifier:  notes,
		LastEmail: store.LastEmail,
		In:        strings.NewReader(input),
		Out:       out,
	})
	return &shell{app: app, api: api, session: sess, notes: notes, out: out}
}

func (s *shell) handleSignIn(role string) {
	user := gin.H{"_id": "u1", "name": "Ann", "email": "ann@example.com", "role": role}
	s.api.Handle(http.MethodPost, "/users/signin", http.StatusOK, apitest.Token("tok-"+role, user))
	s.api.Handle(http.MethodGet, "/users/me", http.StatusOK, apitest.Data("user", user))
}

func (s *shell) signIn(t *testing.T, role string) {
	t.Helper()
	s.handleSignIn(role)
	require.NoError(t, s.session.Login(context.Background(), forms.LoginInput{Email: "ann@example.com", Password: "password1"}))
}

func (s *shell) run(t *testing.T, cmd string, args ...string) error {
	t.Helper()
	return s.app.dispatch(context.Background(), cmd, args)
}

func (s *shell) lastNote(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := s.notes.Last()
	require.True(t, ok, "expected a notification")
	return n
}

func lines(l ...string) string { return strings.Join(l, "\n") + "\n" }

// ---- tests ----

func TestGuardedCommand_RedirectsToLogin(t *testing.T) {
	s := newShell(t, lines("ann@example.com", "password1"))
	s.handleSignIn("user")
	s.api.Handle(http.MethodGet, "/products/product-stats", http.StatusOK, apitest.Data("stats", []gin.H{{"numProducts": 3}}))

	require.NoError(t, s.run(t, "overview"))

	assert.Contains(t, s.out.String(), `You need to log in with the right account to use "overview".`)
	assert.Equal(t, 1, s.api.Calls(http.MethodPost, "/users/signin"))
	assert.Equal(t, 0, s.api.Calls(http.MethodGet, "/products/product-stats"), "guarded page must not load before login")
	assert.Equal(t, session.Authenticated, s.session.Snapshot().Status)

	require.NoError(t, s.run(t, "overview"))
	assert.Equal(t, 1, s.api.Calls(http.MethodGet, "/products/product-stats"))
	assert.Contains(t, s.out.String(), "Products:       3")
}

func TestAdminCommand_UserRoleRedirects(t *testing.T) {
	s := newShell(t, "")
	s.signIn(t, "user")
	before := len(s.api.Requests())

	_ = s.run(t, "admin", "users")

	assert.Contains(t, s.out.String(), "You need to log in")
	assert.Len(t, s.api.Requests(), before, "no users request and no sign-in without input")
}

func TestHelp_ShowsCommandsForRole(t *testing.T) {
	s := newShell(t, "")
	guest := strings.Join(s.app.help(), "\n")
	assert.Contains(t, guest, "products")
	assert.NotContains(t, guest, "deleteme")
	assert.NotContains(t, guest, "admin ")

	s.signIn(t, "admin")
	admin := strings.Join(s.app.help(), "\n")
	assert.Contains(t, admin, "deleteme")
	assert.Contains(t, admin, "admin <products")
}

func TestLogin_InvalidEmailRendersInline(t *testing.T) {
	s := newShell(t, lines("not-an-email", "password1"))
	s.handleSignIn("user")

	err := s.run(t, "login")

	require.ErrorIs(t, err, forms.ErrValidation)
	assert.Equal(t, 0, s.api.Calls(http.MethodPost, "/users/signin"))
	assert.Contains(t, s.out.String(), "  email: ")
	assert.Equal(t, notify.Warning, s.lastNote(t).Severity)
}

func TestLogin_PrefillsLastEmail(t *testing.T) {
	s := newShell(t, lines("", "password1"))
	s.signIn(t, "user")
	require.NoError(t, s.session.Logout(context.Background()))

	require.NoError(t, s.run(t, "login"))

	last, _ := s.api.Last()
	assert.Equal(t, "/users/me", last.Path)
	assert.Equal(t, 2, s.api.Calls(http.MethodPost, "/users/signin"))
	assert.Contains(t, s.out.String(), "Enter email [ann@example.com]")
	assert.Equal(t, session.Authenticated, s.session.Snapshot().Status)
}

func TestCategoryListing_FilterPageAndURL(t *testing.T) {
	s := newShell(t, "")
	s.api.Handle(http.MethodGet, "/categories/c1", http.StatusOK, apitest.Data("category", gin.H{"_id": "c1", "title": "Phones"}))
	s.api.Handle(http.MethodGet, "/categories/c1/products", http.StatusOK,
		apitest.PageOf("products", []gin.H{{"_id": "p1", "title": "Pixel", "price": 120}}, 3))

	require.NoError(t, s.run(t, "category", "c1", "minPrice=50", "maxPrice=200"))

	last, _ := s.api.Last()
	assert.Equal(t, "/categories/c1/products", last.Path)
	assert.Equal(t, "50", last.Query.Get("price[gte]"))
	assert.Equal(t, "200", last.Query.Get("price[lte]"))
	assert.Equal(t, "1", last.Query.Get("page"))
	out := s.out.String()
	assert.Contains(t, out, "Category: Phones")
	assert.Contains(t, out, "Pixel")
	assert.Contains(t, out, "3 page(s)")
	assert.Contains(t, out, "/categories/c1?")
	assert.Contains(t, out, "minPrice=50")

	require.NoError(t, s.run(t, "page", "2"))
	last, _ = s.api.Last()
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Equal(t, "50", last.Query.Get("price[gte]"), "paging keeps the filters")

	require.NoError(t, s.run(t, "filter", "sort=-price"))
	last, _ = s.api.Last()
	assert.Equal(t, "-price", last.Query.Get("sort"))
	assert.Equal(t, "1", last.Query.Get("page"), "a filter change goes back to page 1")
}

func TestCategoryListing_ExplicitPageWithFilters(t *testing.T) {
	s := newShell(t, "")
	s.api.Handle(http.MethodGet, "/categories/c1", http.StatusOK, apitest.Data("category", gin.H{"_id": "c1", "title": "Phones"}))
	s.api.Handle(http.MethodGet, "/categories/c1/products", http.StatusOK, apitest.PageOf("products", []gin.H{}, 0))

	require.NoError(t, s.run(t, "category", "c1", "minPrice=50", "page=2"))

	last, _ := s.api.Last()
	assert.Equal(t, "50", last.Query.Get("price[gte]"))
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Contains(t, s.out.String(), "page=2")
}

func TestAdminUsers_ShowsResultCount(t *testing.T) {
	s := newShell(t, "")
	s.signIn(t, "admin")
	body := apitest.PageOf("users", []gin.H{{"_id": "u7", "name": "Bob", "email": "bob@example.com", "role": "user"}}, 3)
	body["results"] = 25
	s.api.Handle(http.MethodGet, "/users", http.StatusOK, body)

	require.NoError(t, s.run(t, "admin", "users", "2"))

	last, _ := s.api.Last()
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Equal(t, "10", last.Query.Get("limit"))
	out := s.out.String()
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "25 result(s)")
}

func TestOpen_ReproducesQuery(t *testing.T) {
	s := newShell(t, "")
	s.api.Handle(http.MethodGet, "/categories/c1/products", http.StatusOK, apitest.PageOf("products", []gin.H{}, 0))

	require.NoError(t, s.run(t, "open", "http://localhost:5173/categories/c1?minPrice=50&maxPrice=200&page=2"))

	last, _ := s.api.Last()
	assert.Equal(t, "50", last.Query.Get("price[gte]"))
	assert.Equal(t, "200", last.Query.Get("price[lte]"))
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Contains(t, s.out.String(), "No products found.")

	require.Error(t, s.run(t, "open", "/orders"))
}

func TestProducts_ErrorPhaseRendered(t *testing.T) {
	s := newShell(t, "")
	s.api.Handle(http.MethodGet, "/products", http.StatusInternalServerError, apitest.Fail("database down"))

	err := s.run(t, "products")

	require.Error(t, err)
	assert.Contains(t, s.out.String(), "Failed to load products: database down")
}

func TestFilter_WithoutListing(t *testing.T) {
	s := newShell(t, "")
	require.NoError(t, s.run(t, "filter", "minPrice=1"))
	assert.Contains(t, s.out.String(), "No listing open.")
	assert.Empty(t, s.api.Requests())
}

func TestDeleteMe_FailureKeepsSessionAndAsksAgain(t *testing.T) {
	s := newShell(t, lines("y", "n"))
	s.signIn(t, "user")
	s.api.Handle(http.MethodDelete, "/users/deleteMe", http.StatusInternalServerError, apitest.Fail("Server exploded"))

	require.NoError(t, s.run(t, "deleteme"))

	assert.Equal(t, 1, s.api.Calls(http.MethodDelete, "/users/deleteMe"))
	assert.Equal(t, session.Authenticated, s.session.Snapshot().Status)
	assert.Equal(t, notify.Notification{Severity: notify.Error, Message: "Server exploded"}, s.lastNote(t))
	assert.Contains(t, s.out.String(), "Account deletion cancelled.")
}

func TestDeleteMe_Success(t *testing.T) {
	s := newShell(t, lines("yes"))
	s.signIn(t, "user")
	s.api.Handle(http.MethodDelete, "/users/deleteMe", http.StatusNoContent, nil)

	require.NoError(t, s.run(t, "deleteme"))

	assert.Equal(t, session.Anonymous, s.session.Snapshot().Status)
	assert.Equal(t, notify.Success, s.lastNote(t).Severity)
}

func TestAdminAddProduct_PromptsAndPostsOnce(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	image := filepath.Join(dir, "one.png")
	require.NoError(t, os.WriteFile(cover, []byte("\x89PNG"), 0o600))
	require.NoError(t, os.WriteFile(image, []byte("\x89PNG"), 0o600))

	s := newShell(t, lines("Widget", "A widget", "", "19.99", "b1", "c1", cover, image, ""))
	s.signIn(t, "admin")
	s.api.Handle(http.MethodPost, "/products", http.StatusCreated, apitest.Data("product", gin.H{"_id": "p1", "title": "Widget"}))

	require.NoError(t, s.run(t, "admin", "addproduct"))

	require.Equal(t, 1, s.api.Calls(http.MethodPost, "/products"))
	last, _ := s.api.Last()
	assert.Equal(t, "Widget", last.Fields.Get("title"))
	assert.Equal(t, "A widget", last.Fields.Get("description"))
	assert.Equal(t, []string{"imageCover", "images"}, last.FileFields())
	assert.Equal(t, notify.Success, s.lastNote(t).Severity)
}

func TestReviewAdd_SendsRatingAndText(t *testing.T) {
	s := newShell(t, lines("4", "Solid phone"))
	s.signIn(t, "user")
	s.api.Handle(http.MethodPost, "/products/p1/reviews", http.StatusCreated, apitest.Data("review", gin.H{"_id": "r1"}))

	require.NoError(t, s.run(t, "review", "add", "p1"))

	last, _ := s.api.Last()
	assert.Equal(t, float64(4), last.JSON["rating"])
	assert.Equal(t, "Solid phone", last.JSON["review"])
}

func TestRun_RestoresSessionAndQuits(t *testing.T) {
	printed := silence(t)
	s := newShell(t, lines("about", "exit"))

	s.app.Run(context.Background())

	assert.Contains(t, s.out.String(), "Welcome to TrustCart")
	assert.Contains(t, s.out.String(), "About Trust Cart")
	assert.Contains(t, *printed, "trustcart (guest)>")
	assert.Contains(t, *printed, "Bye!")
}
