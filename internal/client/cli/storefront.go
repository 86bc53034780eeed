package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trustcart/internal/client/filter"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	a.println("Usage:", text)
	return errUsage
}

func (a *App) home(ctx context.Context, _ []string) error {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	home := a.catalog.Home(ctx)
	a.println("Top 5 cheapest products")
	if len(home.Cheapest) == 0 {
		a.println("  (none)")
	}
	for _, p := range home.Cheapest {
		a.println("  " + p.String())
	}
	a.println("Categories")
	if len(home.Categories) == 0 {
		a.println("  (none)")
	}
	for _, c := range home.Categories {
		a.printf("  %s [%s]\n", c.Title, c.ID)
	}
	if home.Err != nil {
		a.println("Some sections failed to load:", failureText(home.Err))
	}
	return nil
}

// browse makes sync the listing in view, applies assignments to its filter
// and shows it. An explicit page= is honoured even when other filters
// changed alongside it.
func (a *App) browse(ctx context.Context, sync *filter.Synchronizer, assignments []string) error {
	if len(assignments) > 0 {
		next, err := sync.Current().Apply(assignments...)
		if err != nil {
			a.println(err)
			return err
		}
		sync.Submit(next)
		if pageAssigned(assignments) {
			sync.SetPage(next.Page)
		}
	}
	a.view = sync
	return a.show(ctx)
}

func pageAssigned(assignments []string) bool {
	for _, a := range assignments {
		if key, _, ok := strings.Cut(a, "="); ok && strings.TrimSpace(key) == filter.KeyPage {
			return true
		}
	}
	return false
}

func (a *App) products(ctx context.Context, args []string) error {
	return a.browse(ctx, filter.NewSynchronizer(services.ProductsPath), args)
}

func (a *App) categories(ctx context.Context, args []string) error {
	return a.browse(ctx, filter.NewSynchronizer(services.CategoriesPath), args)
}

func (a *App) brands(ctx context.Context, args []string) error {
	return a.browse(ctx, filter.NewSynchronizer(services.BrandsPath), args)
}

func (a *App) category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("category <id> [k=v ...]")
	}
	cctx, cancel := a.callContext(ctx)
	c, err := a.catalog.Category(cctx, args[0])
	cancel()
	if err != nil {
		a.println("Failed to load category:", failureText(err))
		return err
	}
	a.printf("Category: %s\n", c.Title)
	return a.browse(ctx, filter.NewSynchronizer(services.CategoryPath(c.ID)), args[1:])
}

func (a *App) brand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("brand <id> [k=v ...]")
	}
	cctx, cancel := a.callContext(ctx)
	b, err := a.catalog.Brand(cctx, args[0])
	cancel()
	if err != nil {
		a.println("Failed to load brand:", failureText(err))
		return err
	}
	a.printf("Brand: %s\n", b.Title)
	return a.browse(ctx, filter.NewSynchronizer(services.BrandPath(b.ID)), args[1:])
}

// show loads and renders the listing in view, followed by its URL.
func (a *App) show(ctx context.Context) error {
	route, err := services.ParseListingPath(a.view.Path())
	if err != nil {
		return err
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	var failed error
	switch route.Kind {
	case services.Categories:
		failed = renderListing(a.out, a.catalog.Categories(ctx, a.view), "categories", categoryLine)
	case services.Brands:
		failed = renderListing(a.out, a.catalog.Brands(ctx, a.view), "brands", brandLine)
	default:
		failed = renderListing(a.out, a.catalog.Products(ctx, a.view), "products", productLine)
	}
	a.printf("Page %d  URL: %s\n", a.view.Current().Page, a.view.URL())
	return failed
}

func (a *App) needView() bool {
	if a.view == nil {
		a.println("No listing open. Try 'products', 'categories' or 'brands'.")
		return false
	}
	return true
}

func (a *App) filter(ctx context.Context, args []string) error {
	if !a.needView() {
		return nil
	}
	switch {
	case len(args) == 0:
		renderFilter(a.out, a.view.Current())
		return nil
	case len(args) == 1 && args[0] == "reset":
		a.view.Reset()
		return a.show(ctx)
	}
	return a.browse(ctx, a.view, args)
}

func (a *App) page(ctx context.Context, args []string) error {
	if !a.needView() {
		return nil
	}
	if len(args) != 1 {
		return a.usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		a.println("Page must be a positive number")
		return fmt.Errorf("%w: page %q", filter.ErrInvalidValue, args[0])
	}
	a.view.SetPage(n)
	return a.show(ctx)
}

// open restores a listing from a URL printed by an earlier listing, such
// as /categories/c1?minPrice=50&maxPrice=200&page=2.
func (a *App) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("open <url>")
	}
	sync, err := filter.Open(args[0])
	if err == nil {
		_, err = services.ParseListingPath(sync.Path())
	}
	if err != nil {
		a.println("Cannot open", args[0]+":", err)
		return err
	}
	a.view = sync
	return a.show(ctx)
}

func (a *App) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("product <id>")
	}
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	p, err := a.catalog.Product(ctx, args[0])
	if err != nil {
		a.println("Failed to load product:", failureText(err))
		return err
	}
	renderProduct(a.out, p)
	return nil
}

func (a *App) about(_ context.Context, _ []string) error {
	a.println(aboutText)
	return nil
}

const aboutText = `About Trust Cart
Your Trusted Shopping Destination

Trust Cart is committed to providing an exceptional shopping experience
with a focus on quality, security, and customer satisfaction.

  Secure Shopping   Your data is protected with advanced encryption.
  24/7 Support      Our support team is always here to help.
  Fast Delivery     Quick and reliable shipping.
  Secure Payments   Multiple secure payment options.`
