package filter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrUnknownKey   = errors.New("unknown filter")
	ErrInvalidValue = errors.New("invalid filter value")
)

// Synchronizer owns the URL of one listing. The state is always derived
// from, and written back to, that URL.
type Synchronizer struct {
	mu  sync.Mutex
	url url.URL
}

// NewSynchronizer starts a listing at path with default filters.
func NewSynchronizer(path string) *Synchronizer {
	s := &Synchronizer{url: url.URL{Path: path}}
	s.url.RawQuery = Defaults().Values().Encode()
	return s
}

// Open starts a listing from a previously printed URL. Only the path and
// query are kept.
func Open(raw string) (*Synchronizer, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	if u.Path == "" {
		return nil, fmt.Errorf("listing url %q has no path", raw)
	}
	s := &Synchronizer{url: url.URL{Path: u.Path, RawQuery: u.RawQuery}}
	return s, nil
}

func (s *Synchronizer) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FromValues(s.url.Query())
}

// URL returns a copy of the listing URL.
func (s *Synchronizer) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.url
	return &u
}

func (s *Synchronizer) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url.Path
}

// Submit replaces the whole filter set. The page goes back to 1 unless
// the page is the only thing that changed.
func (s *Synchronizer) Submit(next State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := FromValues(s.url.Query())
	if !sameExceptPage(cur, next) || next.Page < 1 {
		next.Page = DefaultPage
	}
	s.url.RawQuery = next.Values().Encode()
	return next
}

// SetPage moves to page n and keeps every other filter.
func (s *Synchronizer) SetPage(n int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := FromValues(s.url.Query())
	if n < 1 {
		n = DefaultPage
	}
	cur.Page = n
	s.url.RawQuery = cur.Values().Encode()
	return cur
}

// Reset restores the defaults.
func (s *Synchronizer) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Defaults()
	s.url.RawQuery = d.Values().Encode()
	return d
}

// Apply returns s with "key=value" assignments applied, as typed in the
// shell. Both URL names and the short forms sort, min and max are
// accepted; an empty value clears the field back to its default.
func (s State) Apply(assignments ...string) (State, error) {
	d := Defaults()
	for _, a := range assignments {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return s, fmt.Errorf("%w: %q is not key=value", ErrInvalidValue, a)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case KeySearch:
			s.Search = val
		case KeySort, "sort":
			s.Sort = val
		case KeyMinPrice, "min":
			f, err := assignFloat(key, val, d.MinPrice)
			if err != nil {
				return s, err
			}
			s.MinPrice = f
		case KeyMaxPrice, "max":
			f, err := assignFloat(key, val, d.MaxPrice)
			if err != nil {
				return s, err
			}
			s.MaxPrice = f
		case KeyRating:
			f, err := assignFloat(key, val, d.Rating)
			if err != nil {
				return s, err
			}
			s.Rating = f
		case KeyPage:
			if val == "" {
				s.Page = d.Page
				continue
			}
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return s, fmt.Errorf("%w: page %q", ErrInvalidValue, val)
			}
			s.Page = n
		default:
			return s, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}
	return s, nil
}

func assignFloat(key, val string, def float64) (float64, error) {
	if val == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, key, val)
	}
	return f, nil
}
