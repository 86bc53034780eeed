package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/filter"
	"github.com/dmitrijs2005/trustcart/internal/client/listing"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// Listing paths, as printed in shareable URLs.
const (
	ProductsPath   = "/products"
	CategoriesPath = "/categories"
	BrandsPath     = "/brands"
)

var ErrUnknownListing = errors.New("unknown listing")

// ListingKind says which collection a listing URL shows.
type ListingKind int

const (
	AllProducts ListingKind = iota
	CategoryProducts
	BrandProducts
	Categories
	Brands
)

// ListingRoute is a parsed listing path.
type ListingRoute struct {
	Kind ListingKind
	ID   string
}

// ParseListingPath recognizes /products, /categories, /brands,
// /categories/{id} and /brands/{id}.
func ParseListingPath(p string) (ListingRoute, error) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "products":
		return ListingRoute{Kind: AllProducts}, nil
	case len(parts) == 1 && parts[0] == "categories":
		return ListingRoute{Kind: Categories}, nil
	case len(parts) == 1 && parts[0] == "brands":
		return ListingRoute{Kind: Brands}, nil
	case len(parts) == 2 && parts[0] == "categories" && parts[1] != "":
		return ListingRoute{Kind: CategoryProducts, ID: parts[1]}, nil
	case len(parts) == 2 && parts[0] == "brands" && parts[1] != "":
		return ListingRoute{Kind: BrandProducts, ID: parts[1]}, nil
	}
	return ListingRoute{}, fmt.Errorf("%w: %s", ErrUnknownListing, p)
}

// CategoryPath is the listing path of one category's products.
func CategoryPath(id string) string { return CategoriesPath + "/" + url.PathEscape(id) }

// BrandPath is the listing path of one brand's products.
func BrandPath(id string) string { return BrandsPath + "/" + url.PathEscape(id) }

// HomePage is what the storefront front page shows.
type HomePage struct {
	Cheapest   []models.Product
	Categories []models.Category
	// Err is set when a section could not be loaded; the other still shows.
	Err error
}

// CatalogService defines the read-only storefront operations.
//
// Contract:
//   - Listing methods never return an error: failures are reported in
//     the listing.State phase.
//   - Products, Categories and Brands each own a listing.View; a result
//     superseded by a newer load of the same view is discarded.
type CatalogService interface {
	Home(ctx context.Context) HomePage
	Product(ctx context.Context, id string) (*models.Product, error)
	Category(ctx context.Context, id string) (*models.Category, error)
	Brand(ctx context.Context, id string) (*models.Brand, error)
	Products(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Product]
	Categories(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Category]
	Brands(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Brand]
	Stats(ctx context.Context) (*models.ProductStats, error)
}

type catalogService struct {
	client client.Client

	products   *listing.View[models.Product]
	categories *listing.View[models.Category]
	brands     *listing.View[models.Brand]
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{
		client:     c,
		products:   listing.NewView[models.Product](),
		categories: listing.NewView[models.Category](),
		brands:     listing.NewView[models.Brand](),
	}
}

func (s *catalogService) Home(ctx context.Context) HomePage {
	var home HomePage
	cheap, err := s.client.TopCheapProducts(ctx)
	if err != nil {
		home.Err = err
	}
	home.Cheapest = cheap

	cats, err := s.client.ListCategories(ctx, nil)
	if err != nil {
		home.Err = errors.Join(home.Err, err)
	}
	home.Categories = cats.Items
	return home
}

func (s *catalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.client.GetProduct(ctx, id)
}

func (s *catalogService) Category(ctx context.Context, id string) (*models.Category, error) {
	return s.client.GetCategory(ctx, id)
}

func (s *catalogService) Brand(ctx context.Context, id string) (*models.Brand, error) {
	return s.client.GetBrand(ctx, id)
}

// Products loads the product listing behind sync: all products, one
// category's or one brand's, by path.
func (s *catalogService) Products(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Product] {
	route, err := ParseListingPath(sync.Path())
	if err == nil && route.Kind != AllProducts && route.Kind != CategoryProducts && route.Kind != BrandProducts {
		err = fmt.Errorf("%w: %s is not a product listing", ErrUnknownListing, sync.Path())
	}
	q := sync.Current().APIQuery()

	return s.products.Load(ctx, func(ctx context.Context) (models.Page[models.Product], error) {
		if err != nil {
			return models.Page[models.Product]{}, err
		}
		switch route.Kind {
		case CategoryProducts:
			return s.client.CategoryProducts(ctx, route.ID, q)
		case BrandProducts:
			return s.client.BrandProducts(ctx, route.ID, q)
		default:
			return s.client.ListProducts(ctx, q)
		}
	})
}

// Categories supports search and page.
func (s *catalogService) Categories(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Category] {
	st := sync.Current()
	q := url.Values{"page": {strconv.Itoa(st.Page)}}
	if st.Search != "" {
		q.Set("search", st.Search)
	}
	return s.categories.Load(ctx, func(ctx context.Context) (models.Page[models.Category], error) {
		return s.client.ListCategories(ctx, q)
	})
}

// Brands supports search, sort and page.
func (s *catalogService) Brands(ctx context.Context, sync *filter.Synchronizer) listing.State[models.Brand] {
	st := sync.Current()
	q := url.Values{"page": {strconv.Itoa(st.Page)}}
	if st.Search != "" {
		q.Set("search", st.Search)
	}
	if st.Sort != "" {
		q.Set("sort", st.Sort)
	}
	return s.brands.Load(ctx, func(ctx context.Context) (models.Page[models.Brand], error) {
		return s.client.ListBrands(ctx, q)
	})
}

// Stats returns the first row of the product statistics, which is the
// whole-catalog aggregate.
func (s *catalogService) Stats(ctx context.Context) (*models.ProductStats, error) {
	rows, err := s.client.ProductStats(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.ProductStats{}, nil
	}
	return &rows[0], nil
}
