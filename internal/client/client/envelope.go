package client

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// envelope is the response wrapper used by every API endpoint:
//
//	{"status": "success", "token": "...", "results": 24, "data": {"product": {...}}, "metadata": {"numberOfPages": 3}}
type envelope struct {
	Status   string                     `json:"status"`
	Message  string                     `json:"message"`
	Token    string                     `json:"token"`
	Results  int                        `json:"results"`
	Data     map[string]json.RawMessage `json:"data"`
	Metadata struct {
		NumberOfPages int `json:"numberOfPages"`
	} `json:"metadata"`
}

// pick decodes the first of keys present under "data" into out. Resource
// endpoints name the payload after the resource; generic handlers use
// "data" or "doc", so those are tried as fallbacks.
func (e *envelope) pick(out any, keys ...string) error {
	if e.Data == nil {
		return fmt.Errorf("%w: no data", ErrMalformedResponse)
	}
	keys = append(keys, "data", "doc")
	for _, k := range keys {
		raw, ok := e.Data[k]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: data.%s: %w", ErrMalformedResponse, k, err)
		}
		return nil
	}
	return fmt.Errorf("%w: none of data.%v present", ErrMalformedResponse, keys)
}

// one decodes a single record and validates it.
func one[T any, PT interface {
	*T
	models.Validatable
}](e *envelope, keys ...string) (*T, error) {
	var v T
	if err := e.pick(&v, keys...); err != nil {
		return nil, err
	}
	if err := PT(&v).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &v, nil
}

// many decodes a list and validates each element.
func many[T any, PT interface {
	*T
	models.Validatable
}](e *envelope, keys ...string) ([]T, error) {
	var v []T
	if err := e.pick(&v, keys...); err != nil {
		return nil, err
	}
	if err := models.ValidateAll[T, PT](v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return v, nil
}

// page decodes a list plus the page and row counts.
func page[T any, PT interface {
	*T
	models.Validatable
}](e *envelope, keys ...string) (models.Page[T], error) {
	items, err := many[T, PT](e, keys...)
	if err != nil {
		return models.Page[T]{}, err
	}
	return models.Page[T]{Items: items, NumberOfPages: e.Metadata.NumberOfPages, Results: e.Results}, nil
}
