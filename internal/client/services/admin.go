package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/listing"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
)

// DefaultPageSize is the row count of dashboard tables.
const DefaultPageSize = 10

var (
	addProductMessages = forms.Messages{
		Success:  "Product added successfully!",
		Fallback: "Failed to add product.",
	}
	editProductMessages = forms.Messages{
		Success:  "Product updated successfully!",
		Fallback: "Failed to update product.",
	}
	deleteProductMessages = forms.Messages{
		Success:  "Product deleted successfully!",
		Fallback: "Failed to delete product.",
	}
	addUserMessages = forms.Messages{
		Success:  "User added successfully",
		Fallback: "Failed to submit user",
	}
	editUserMessages = forms.Messages{
		Success:  "User updated successfully",
		Fallback: "Failed to submit user",
	}
	deleteUserMessages = forms.Messages{
		Success:  "User deleted successfully!",
		Fallback: "Failed to delete user.",
	}
)

// AdminService defines the dashboard operations.
//
// Contract:
//   - Products and Overview need any signed-in user; every other method
//     needs the admin role and returns session.ErrLoginRequired otherwise,
//     without calling the API.
//   - Mutations follow the forms contract: no call on field errors, one
//     call otherwise, a notification either way.
type AdminService interface {
	Products(ctx context.Context, page, limit int) listing.State[models.Product]
	Users(ctx context.Context, page, limit int) listing.State[models.User]
	AddProduct(ctx context.Context, d forms.ProductDraft) error
	EditProduct(ctx context.Context, id string, d forms.ProductDraft) error
	ProductDraft(ctx context.Context, id string) (forms.ProductDraft, error)
	DeleteProduct(ctx context.Context, id string) error
	AddUser(ctx context.Context, d forms.UserDraft) error
	EditUser(ctx context.Context, id string, d forms.UserDraft) error
	UserDraft(ctx context.Context, id string) (forms.UserDraft, error)
	DeleteUser(ctx context.Context, id string) error
}

type adminService struct {
	client   client.Client
	session  *session.Session
	images   ImageLoader
	notifier notify.Notifier

	products *listing.View[models.Product]
	users    *listing.View[models.User]

	addProduct  *forms.Form[forms.ProductDraft, forms.ProductInput]
	editProduct *forms.Form[forms.ProductDraft, forms.ProductInput]
	addUser     *forms.Form[forms.UserDraft, forms.UserInput]
	editUser    *forms.Form[forms.UserDraft, forms.UserInput]
}

func NewAdminService(c client.Client, s *session.Session, images ImageLoader, n notify.Notifier) AdminService {
	a := &adminService{
		client:   c,
		session:  s,
		images:   images,
		notifier: n,
		products: listing.NewView[models.Product](),
		users:    listing.NewView[models.User](),
	}
	a.addProduct = forms.NewForm(forms.ValidateNewProduct, a.createProduct, addProductMessages, n)
	a.editProduct = forms.NewForm[forms.ProductDraft, forms.ProductInput](forms.ValidateProductEdit, nil, editProductMessages, n)
	a.addUser = forms.NewForm(forms.ValidateNewUser, a.createUser, addUserMessages, n)
	a.editUser = forms.NewForm[forms.UserDraft, forms.UserInput](forms.ValidateUserEdit, nil, editUserMessages, n)
	return a
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
}

// Products is the dashboard product table. Users see it read-only.
func (a *adminService) Products(ctx context.Context, page, limit int) listing.State[models.Product] {
	q := pageQuery(page, limit)
	return a.products.Load(ctx, func(ctx context.Context) (models.Page[models.Product], error) {
		if err := a.session.Require(models.RoleUser, models.RoleAdmin); err != nil {
			return models.Page[models.Product]{}, err
		}
		return a.client.ListProducts(ctx, q)
	})
}

func (a *adminService) Users(ctx context.Context, page, limit int) listing.State[models.User] {
	q := pageQuery(page, limit)
	return a.users.Load(ctx, func(ctx context.Context) (models.Page[models.User], error) {
		if err := a.session.Require(models.RoleAdmin); err != nil {
			return models.Page[models.User]{}, err
		}
		return a.client.ListUsers(ctx, q)
	})
}

func (a *adminService) productRequest(ctx context.Context, in forms.ProductInput) (client.ProductRequest, error) {
	req := client.ProductRequest{
		Title:       in.Title,
		Description: in.Description,
		Price:       strconv.FormatFloat(in.Price, 'f', -1, 64),
		Brand:       in.Brand,
		Category:    in.Category,
	}
	cover, err := a.images.LoadOptional(ctx, in.Cover)
	if err != nil {
		return req, fmt.Errorf("cover image: %w", err)
	}
	req.ImageCover = cover
	if req.Images, err = a.images.LoadAll(ctx, in.Images); err != nil {
		return req, fmt.Errorf("product images: %w", err)
	}
	return req, nil
}

func (a *adminService) AddProduct(ctx context.Context, d forms.ProductDraft) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.addProduct.SubmitDraft(ctx, d)
}

func (a *adminService) createProduct(ctx context.Context, in forms.ProductInput) error {
	req, err := a.productRequest(ctx, in)
	if err != nil {
		return err
	}
	_, err = a.client.CreateProduct(ctx, req)
	return err
}

func (a *adminService) EditProduct(ctx context.Context, id string, d forms.ProductDraft) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.editProduct.SubmitDraftTo(ctx, d, func(ctx context.Context, in forms.ProductInput) error {
		req, err := a.productRequest(ctx, in)
		if err != nil {
			return err
		}
		_, err = a.client.UpdateProduct(ctx, id, req)
		return err
	})
}

// ProductDraft prefills the edit form from the stored product. Images are
// left empty so the stored ones are kept unless replaced.
func (a *adminService) ProductDraft(ctx context.Context, id string) (forms.ProductDraft, error) {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return forms.ProductDraft{}, err
	}
	p, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return forms.ProductDraft{}, err
	}
	return forms.ProductDraft{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.String(),
		Brand:       p.Brand.ID,
		Category:    p.Category.ID,
	}, nil
}

func (a *adminService) DeleteProduct(ctx context.Context, id string) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.remove(ctx, deleteProductMessages, func(ctx context.Context) error {
		return a.client.DeleteProduct(ctx, id)
	})
}

func userRequest(in forms.UserInput) client.UserRequest {
	return client.UserRequest{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
		Role:            string(in.Role),
	}
}

func (a *adminService) AddUser(ctx context.Context, d forms.UserDraft) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.addUser.SubmitDraft(ctx, d)
}

func (a *adminService) createUser(ctx context.Context, in forms.UserInput) error {
	_, err := a.client.CreateUser(ctx, userRequest(in))
	return err
}

func (a *adminService) EditUser(ctx context.Context, id string, d forms.UserDraft) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.editUser.SubmitDraftTo(ctx, d, func(ctx context.Context, in forms.UserInput) error {
		_, err := a.client.UpdateUser(ctx, id, userRequest(in))
		return err
	})
}

func (a *adminService) UserDraft(ctx context.Context, id string) (forms.UserDraft, error) {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return forms.UserDraft{}, err
	}
	u, err := a.client.GetUser(ctx, id)
	if err != nil {
		return forms.UserDraft{}, err
	}
	return forms.UserDraft{Name: u.Name, Email: u.Email, Role: string(u.Role)}, nil
}

func (a *adminService) DeleteUser(ctx context.Context, id string) error {
	if err := a.session.Require(models.RoleAdmin); err != nil {
		return err
	}
	return a.remove(ctx, deleteUserMessages, func(ctx context.Context) error {
		return a.client.DeleteUser(ctx, id)
	})
}

func (a *adminService) remove(ctx context.Context, msgs forms.Messages, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		notify.Errorf(ctx, a.notifier, "%s", forms.FailureMessage(err, msgs.Fallback))
		return err
	}
	notify.Successf(ctx, a.notifier, "%s", msgs.Success)
	return nil
}
