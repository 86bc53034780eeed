// Package filter keeps the facet state of a product listing (search, sort,
// price bounds, minimum rating and page) in step with the listing URL.
package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// URL parameter names.
const (
	KeySearch   = "search"
	KeySort     = "sortBy"
	KeyMinPrice = "minPrice"
	KeyMaxPrice = "maxPrice"
	KeyRating   = "rating"
	KeyPage     = "page"
)

// Defaults applied to absent or unparseable parameters.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
	DefaultRating   = 0
	DefaultPage     = 1
)

// SortOptions are the sort keys offered to the user. Unknown keys found in
// a URL are still passed through to the API.
var SortOptions = []SortOption{
	{Key: "", Label: "Default"},
	{Key: "+price", Label: "Price: Low to High"},
	{Key: "-price", Label: "Price: High to Low"},
	{Key: "-ratingsAverage", Label: "Highest Rated"},
}

type SortOption struct {
	Key   string
	Label string
}

type State struct {
	Search   string
	Sort     string
	MinPrice float64
	MaxPrice float64
	Rating   float64
	Page     int
}

func Defaults() State {
	return State{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Rating:   DefaultRating,
		Page:     DefaultPage,
	}
}

// FromValues reads a state from URL parameters. Bounds are not range
// checked; only values that do not parse fall back to their default.
func FromValues(v url.Values) State {
	s := Defaults()
	s.Search = v.Get(KeySearch)
	s.Sort = v.Get(KeySort)
	s.MinPrice = parseFloat(v.Get(KeyMinPrice), DefaultMinPrice)
	s.MaxPrice = parseFloat(v.Get(KeyMaxPrice), DefaultMaxPrice)
	s.Rating = parseFloat(v.Get(KeyRating), DefaultRating)
	s.Page = parsePage(v.Get(KeyPage))
	return s
}

// Values is the inverse of FromValues. All six parameters are written.
func (s State) Values() url.Values {
	return url.Values{
		KeySearch:   {s.Search},
		KeySort:     {s.Sort},
		KeyMinPrice: {formatFloat(s.MinPrice)},
		KeyMaxPrice: {formatFloat(s.MaxPrice)},
		KeyRating:   {formatFloat(s.Rating)},
		KeyPage:     {strconv.Itoa(s.Page)},
	}
}

// APIQuery is the remote query derived from s.
func (s State) APIQuery() url.Values {
	return url.Values{
		"search":              {s.Search},
		"sort":                {s.Sort},
		"price[gte]":          {formatFloat(s.MinPrice)},
		"price[lte]":          {formatFloat(s.MaxPrice)},
		"ratingsAverage[gte]": {formatFloat(s.Rating)},
		"page":                {strconv.Itoa(s.Page)},
	}
}

// sameExceptPage reports whether a and b differ only in their page.
func sameExceptPage(a, b State) bool {
	a.Page, b.Page = 0, 0
	return a == b
}

func parseFloat(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// parsePage accepts positive integers only.
func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
