package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// TokenSource yields the bearer token to attach to the next request. An
// empty token means the request goes out without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the TrustCart REST API as consumed by the storefront.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignUp(ctx context.Context, req SignUpRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, req UpdateMeRequest) (*models.User, error)
	UpdateMyPassword(ctx context.Context, req UpdatePasswordRequest) error
	DeleteMe(ctx context.Context) error

	ListProducts(ctx context.Context, query url.Values) (models.Page[models.Product], error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	TopCheapProducts(ctx context.Context) ([]models.Product, error)
	ProductStats(ctx context.Context) ([]models.ProductStats, error)
	ListCategories(ctx context.Context, query url.Values) (models.Page[models.Category], error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CategoryProducts(ctx context.Context, id string, query url.Values) (models.Page[models.Product], error)
	ListBrands(ctx context.Context, query url.Values) (models.Page[models.Brand], error)
	GetBrand(ctx context.Context, id string) (*models.Brand, error)
	BrandProducts(ctx context.Context, id string, query url.Values) (models.Page[models.Product], error)

	CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListUsers(ctx context.Context, query url.Values) (models.Page[models.User], error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, req UserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req UserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreateReview(ctx context.Context, productID string, req ReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, productID, reviewID string, req ReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, productID, reviewID string) error
}
