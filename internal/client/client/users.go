package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

func (h *HTTPClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	env, err := withBody(h.doJSON(ctx, http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	}, "users", "signin"))
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, fmt.Errorf("%w: no token", ErrMalformedResponse)
	}

	res := &SignInResult{Token: env.Token}
	if _, ok := env.Data["user"]; ok {
		u, err := one[models.User](env, "user")
		if err != nil {
			return nil, err
		}
		res.User = u
	}
	return res, nil
}

func (h *HTTPClient) SignUp(ctx context.Context, req SignUpRequest) error {
	_, err := h.doJSON(ctx, http.MethodPost, req, "users", "signup")
	return err
}

func (h *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	_, err := h.doJSON(ctx, http.MethodPost, map[string]string{"email": email}, "users", "forgotPassword")
	return err
}

func (h *HTTPClient) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	_, err := h.doJSON(ctx, http.MethodPost, req, "users", "resetPassword", token)
	return err
}

func (h *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	env, err := h.get(ctx, nil, "users", "me")
	if err != nil {
		return nil, err
	}
	return one[models.User](env, "user")
}

func (h *HTTPClient) UpdateMe(ctx context.Context, req UpdateMeRequest) (*models.User, error) {
	fields := []formField{{"name", req.Name}, {"email", req.Email}}
	var files []filePart
	if req.Photo != nil {
		files = append(files, filePart{field: "photo", upload: *req.Photo})
	}
	body, ct, err := encodeMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	env, err := withBody(h.do(ctx, request{
		method:      http.MethodPatch,
		segments:    []string{"users", "updateMe"},
		body:        body,
		contentType: ct,
	}))
	if err != nil {
		return nil, err
	}
	return one[models.User](env, "user")
}

func (h *HTTPClient) UpdateMyPassword(ctx context.Context, req UpdatePasswordRequest) error {
	_, err := h.doJSON(ctx, http.MethodPut, req, "users", "updateMyPassword")
	return err
}

func (h *HTTPClient) DeleteMe(ctx context.Context) error {
	return h.delete(ctx, "users", "deleteMe")
}

func (h *HTTPClient) ListUsers(ctx context.Context, query url.Values) (models.Page[models.User], error) {
	env, err := h.get(ctx, query, "users")
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return page[models.User](env, "users")
}

func (h *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	env, err := h.get(ctx, nil, "users", id)
	if err != nil {
		return nil, err
	}
	return one[models.User](env, "user")
}

func (h *HTTPClient) CreateUser(ctx context.Context, req UserRequest) (*models.User, error) {
	env, err := withBody(h.doJSON(ctx, http.MethodPost, req, "users"))
	if err != nil {
		return nil, err
	}
	return one[models.User](env, "user")
}

func (h *HTTPClient) UpdateUser(ctx context.Context, id string, req UserRequest) (*models.User, error) {
	env, err := withBody(h.doJSON(ctx, http.MethodPatch, req, "users", id))
	if err != nil {
		return nil, err
	}
	return one[models.User](env, "user")
}

func (h *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return h.delete(ctx, "users", id)
}
