package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

func (h *HTTPClient) ListProducts(ctx context.Context, query url.Values) (models.Page[models.Product], error) {
	env, err := h.get(ctx, query, "products")
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return page[models.Product](env, "products")
}

func (h *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	env, err := h.get(ctx, nil, "products", id)
	if err != nil {
		return nil, err
	}
	return one[models.Product](env, "product")
}

func (h *HTTPClient) TopCheapProducts(ctx context.Context) ([]models.Product, error) {
	env, err := h.get(ctx, nil, "products", "top-5-cheap")
	if err != nil {
		return nil, err
	}
	return many[models.Product](env, "products")
}

func (h *HTTPClient) ProductStats(ctx context.Context) ([]models.ProductStats, error) {
	env, err := h.get(ctx, nil, "products", "product-stats")
	if err != nil {
		return nil, err
	}
	var stats []models.ProductStats
	if err := env.pick(&stats, "stats"); err != nil {
		return nil, err
	}
	return stats, nil
}

func (h *HTTPClient) ListCategories(ctx context.Context, query url.Values) (models.Page[models.Category], error) {
	env, err := h.get(ctx, query, "categories")
	if err != nil {
		return models.Page[models.Category]{}, err
	}
	return page[models.Category](env, "categories")
}

func (h *HTTPClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	env, err := h.get(ctx, nil, "categories", id)
	if err != nil {
		return nil, err
	}
	return one[models.Category](env, "category")
}

func (h *HTTPClient) CategoryProducts(ctx context.Context, id string, query url.Values) (models.Page[models.Product], error) {
	env, err := h.get(ctx, query, "categories", id, "products")
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return page[models.Product](env, "products")
}

func (h *HTTPClient) ListBrands(ctx context.Context, query url.Values) (models.Page[models.Brand], error) {
	env, err := h.get(ctx, query, "brands")
	if err != nil {
		return models.Page[models.Brand]{}, err
	}
	return page[models.Brand](env, "brands")
}

func (h *HTTPClient) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	env, err := h.get(ctx, nil, "brands", id)
	if err != nil {
		return nil, err
	}
	return one[models.Brand](env, "brand")
}

func (h *HTTPClient) BrandProducts(ctx context.Context, id string, query url.Values) (models.Page[models.Product], error) {
	env, err := h.get(ctx, query, "brands", id, "products")
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return page[models.Product](env, "products")
}
