package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/client/filter"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
	"github.com/dmitrijs2005/trustcart/internal/common"
	"github.com/dmitrijs2005/trustcart/internal/logging"
)

// Deps are the collaborators of App. In and Out default to empty input and
// io.Discard; Notifier defaults to a console on Out.
type Deps struct {
	Session  *session.Session
	Account  services.AccountService
	Catalog  services.CatalogService
	Admin    services.AdminService
	Reviews  services.ReviewService
	Notifier notify.Notifier
	Logger   logging.Logger

	// LastEmail, when set, prefills the login prompt.
	LastEmail func(ctx context.Context) (string, error)

	// Timeout bounds every API call a command makes. Zero means no limit.
	Timeout time.Duration

	In  io.Reader
	Out io.Writer
}

// command is one shell command.
//
// guard marks commands that need a session; roles narrows them further.
// A guarded command the current user may not run redirects to login.
type command struct {
	name    string
	usage   string
	summary string
	guard   bool
	roles   []models.Role
	run     func(ctx context.Context, args []string) error
}

// App is the TrustCart shell.
type App struct {
	session  *session.Session
	account  services.AccountService
	catalog  services.CatalogService
	admin    services.AdminService
	reviews  services.ReviewService
	notifier notify.Notifier
	log      logging.Logger
	timeout  time.Duration

	lastEmail func(ctx context.Context) (string, error)

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer

	commands []command
	byName   map[string]*command

	// view is the listing currently shown; filter, page and open act on it.
	view *filter.Synchronizer
}

func NewApp(d Deps) *App {
	in := d.In
	if in == nil {
		in = strings.NewReader("")
	}
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notify.NewConsole(out)
	}
	feeder := &lineFeeder{src: bufio.NewReader(in)}

	a := &App{
		session:   d.Session,
		account:   d.Account,
		catalog:   d.Catalog,
		admin:     d.Admin,
		reviews:   d.Reviews,
		notifier:  notifier,
		log:       log,
		timeout:   d.Timeout,
		lastEmail: d.LastEmail,
		in:        feeder,
		reader:    bufio.NewReader(feeder),
		out:       out,
	}
	a.commands = a.commandTable()
	a.byName = make(map[string]*command, len(a.commands))
	for i := range a.commands {
		a.byName[a.commands[i].name] = &a.commands[i]
	}
	return a
}

// Run restores the stored session and runs the shell until the input ends,
// the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to TrustCart (type 'help' for commands)")

	cctx, cancel := a.callContext(ctx)
	err := a.session.Discover(cctx)
	cancel()
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		notify.Infof(ctx, a.notifier, "Your session has expired. Please log in again.")
	case err != nil:
		a.log.Warn(ctx, "restore session", "err", err)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.in))
}

func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.Status != session.Authenticated || snap.User == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s, %s)", snap.User.Name, snap.User.Role)
}

// allowed reports whether the current user may run c.
func (a *App) allowed(c *command) bool {
	return !c.guard || a.session.Require(c.roles...) == nil
}

func (a *App) help() []string {
	lines := []string{"Available commands:"}
	for i := range a.commands {
		c := &a.commands[i]
		if !a.allowed(c) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-34s %s", strings.TrimSpace(c.name+" "+c.usage), c.summary))
	}
	return append(lines, fmt.Sprintf("  %-34s %s", "exit", "leave the shell"))
}

// dispatch runs the named command. A guarded command the session does not
// allow prints a notice and runs the login flow instead.
func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	c, ok := a.byName[name]
	if !ok {
		return errUnknownCommand
	}
	if !a.allowed(c) {
		a.printf("You need to log in with the right account to use %q.\n", name)
		return a.login(ctx, nil)
	}
	err := c.run(ctx, args)
	if err != nil {
		a.log.Debug(ctx, "command failed", "command", name, "err", err)
	}
	return err
}

// callContext bounds one API call with the configured timeout.
func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// ask, askDefault, askPassword and askLines wrap the input helpers with the
// shell's reader and writer.
func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askDefault(prompt, current string) (string, error) {
	return GetWithDefault(a.reader, prompt, current, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	return getPassword(a.reader, prompt, a.out)
}

func (a *App) askLines(prompt string) ([]string, error) {
	return GetLines(a.reader, prompt, a.out)
}

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// lineFeeder hands its input out one line per Read. The REPL scanner and
// the prompt reader share it, so neither buffers past the line it consumes.
type lineFeeder struct {
	src  *bufio.Reader
	rest []byte
}

func (l *lineFeeder) Read(p []byte) (int, error) {
	if len(l.rest) == 0 {
		line, err := l.src.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.rest = line
	}
	n := copy(p, l.rest)
	l.rest = l.rest[n:]
	return n, nil
}

func (a *App) commandTable() []command {
	dashboard := []models.Role{models.RoleUser, models.RoleAdmin}
	admin := []models.Role{models.RoleAdmin}

	return []command{
		{name: "home", summary: "cheapest products and categories", run: a.home},
		{name: "products", usage: "[k=v ...]", summary: "all products", run: a.products},
		{name: "product", usage: "<id>", summary: "product details and reviews", run: a.product},
		{name: "categories", usage: "[search=...]", summary: "all categories", run: a.categories},
		{name: "category", usage: "<id> [k=v ...]", summary: "products of a category", run: a.category},
		{name: "brands", usage: "[k=v ...]", summary: "all brands", run: a.brands},
		{name: "brand", usage: "<id> [k=v ...]", summary: "products of a brand", run: a.brand},
		{name: "filter", usage: "[k=v ... | reset]", summary: "show or change the listing filters", run: a.filter},
		{name: "page", usage: "<n>", summary: "go to a page of the listing", run: a.page},
		{name: "open", usage: "<url>", summary: "open a listing URL", run: a.open},
		{name: "about", summary: "about TrustCart", run: a.about},

		{name: "login", summary: "sign in", run: a.login},
		{name: "register", summary: "create an account", run: a.register},
		{name: "forgot", summary: "send a password reset link", run: a.forgot},
		{name: "reset", usage: "[token]", summary: "set a new password with a reset token", run: a.reset},
		{name: "logout", guard: true, summary: "sign out", run: a.logout},

		{name: "profile", guard: true, summary: "show your profile", run: a.profile},
		{name: "updateme", guard: true, summary: "update your name, email and photo", run: a.updateMe},
		{name: "passwd", guard: true, summary: "change your password", run: a.passwd},
		{name: "deleteme", guard: true, summary: "delete your account", run: a.deleteMe},
		{name: "review", usage: "add <product> | edit <product> <review> | delete <product> <review>", guard: true, summary: "manage your reviews", run: a.review},

		{name: "overview", guard: true, roles: dashboard, summary: "catalog statistics", run: a.overview},
		{name: "myproducts", usage: "[page]", guard: true, roles: dashboard, summary: "dashboard product table", run: a.myProducts},
		{name: "admin", usage: "<products|addproduct|editproduct|delproduct|users|adduser|edituser|deluser> ...", guard: true, roles: admin, summary: "admin dashboard", run: a.adminCmd},
	}
}
