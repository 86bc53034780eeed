package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// productMultipart writes the text fields first, then imageCover and one
// "images" part per image.
func productMultipart(req ProductRequest) (request, error) {
	fields := []formField{
		{"title", req.Title},
		{"description", req.Description},
		{"price", req.Price},
		{"brand", req.Brand},
		{"category", req.Category},
	}
	var files []filePart
	if req.ImageCover != nil {
		files = append(files, filePart{field: "imageCover", upload: *req.ImageCover})
	}
	for _, img := range req.Images {
		files = append(files, filePart{field: "images", upload: img})
	}

	body, ct, err := encodeMultipart(fields, files)
	if err != nil {
		return request{}, err
	}
	return request{body: body, contentType: ct}, nil
}

func (h *HTTPClient) CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error) {
	r, err := productMultipart(req)
	if err != nil {
		return nil, err
	}
	r.method = http.MethodPost
	r.segments = []string{"products"}

	env, err := withBody(h.do(ctx, r))
	if err != nil {
		return nil, err
	}
	return one[models.Product](env, "product")
}

func (h *HTTPClient) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*models.Product, error) {
	r, err := productMultipart(req)
	if err != nil {
		return nil, err
	}
	r.method = http.MethodPatch
	r.segments = []string{"products", id}

	env, err := withBody(h.do(ctx, r))
	if err != nil {
		return nil, err
	}
	return one[models.Product](env, "product")
}

func (h *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	return h.delete(ctx, "products", id)
}

func (h *HTTPClient) CreateReview(ctx context.Context, productID string, req ReviewRequest) (*models.Review, error) {
	env, err := withBody(h.doJSON(ctx, http.MethodPost, req, "products", productID, "reviews"))
	if err != nil {
		return nil, err
	}
	return one[models.Review](env, "review")
}

func (h *HTTPClient) UpdateReview(ctx context.Context, productID, reviewID string, req ReviewRequest) (*models.Review, error) {
	env, err := withBody(h.doJSON(ctx, http.MethodPatch, req, "products", productID, "reviews", reviewID))
	if err != nil {
		return nil, err
	}
	return one[models.Review](env, "review")
}

func (h *HTTPClient) DeleteReview(ctx context.Context, productID, reviewID string) error {
	return h.delete(ctx, "products", productID, "reviews", reviewID)
}
