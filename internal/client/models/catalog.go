package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Ref is a relational reference that the API sends either as a bare id or
// as an embedded {_id, title} object.
type Ref struct {
	ID    string `json:"_id"`
	Title string `json:"title,omitempty"`
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("%w: reference: %s", ErrMalformed, err)
	}
	*r = Ref(p)
	return nil
}

func (r Ref) String() string {
	if r.Title != "" {
		return r.Title
	}
	return r.ID
}

type Brand struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

func (b *Brand) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: brand: %w", ErrMalformed, ErrMissingID)
	}
	return nil
}

type Category struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: category: %w", ErrMalformed, ErrMissingID)
	}
	return nil
}

// ReviewAuthor is the embedded user on a review.
type ReviewAuthor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Review struct {
	ID        string       `json:"_id"`
	Rating    Number       `json:"rating"`
	Review    string       `json:"review"`
	User      ReviewAuthor `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (r *Review) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: review: %w", ErrMalformed, ErrMissingID)
	}
	return nil
}

type Product struct {
	ID              string   `json:"_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           Number   `json:"price"`
	ImageCover      string   `json:"imageCover"`
	Images          []string `json:"images"`
	RatingsAverage  Number   `json:"ratingsAverage"`
	RatingsQuantity Number   `json:"ratingsQuantity"`
	Brand           Ref      `json:"brand"`
	Category        Ref      `json:"category"`
	Reviews         []Review `json:"reviews,omitempty"`
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product: %w", ErrMalformed, ErrMissingID)
	}
	for i := range p.Reviews {
		if err := p.Reviews[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p Product) String() string {
	return fmt.Sprintf("%s  $%s  ★%s (%s)  [%s]", p.Title, p.Price, p.RatingsAverage, p.RatingsQuantity, p.ID)
}

// ProductStats is one row of GET /products/product-stats.
type ProductStats struct {
	NumProducts Number `json:"numProducts"`
	NumRatings  Number `json:"numRatings"`
	AvgRating   Number `json:"avgRating"`
	AvgPrice    Number `json:"avgPrice"`
	MinPrice    Number `json:"minPrice"`
	MaxPrice    Number `json:"maxPrice"`
}

// Page is one page of a listing plus the total page count reported by the
// API's metadata block.
type Page[T any] struct {
	Items         []T
	NumberOfPages int
	// Results is the top-level row count; dashboard tables show it as
	// their total.
	Results int
}

// Validatable is implemented by every record pointer type above.
type Validatable interface {
	Validate() error
}

// ValidateAll checks every element, stopping at the first failure.
func ValidateAll[T any, PT interface {
	*T
	Validatable
}](items []T) error {
	for i := range items {
		if err := PT(&items[i]).Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
