package filter

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValues_Defaults(t *testing.T) {
	got := FromValues(url.Values{})
	want := State{MinPrice: 0, MaxPrice: 1000, Rating: 0, Page: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValues_MalformedFallsBack(t *testing.T) {
	got := FromValues(url.Values{
		KeyMinPrice: {"cheap"},
		KeyMaxPrice: {"NaN"},
		KeyRating:   {""},
		KeyPage:     {"-3"},
	})
	assert.Equal(t, Defaults(), got)
}

func TestFromValues_OutOfRangeIsNotClamped(t *testing.T) {
	got := FromValues(url.Values{KeyMinPrice: {"-10"}, KeyMaxPrice: {"99999"}, KeyRating: {"7"}})
	assert.Equal(t, -10.0, got.MinPrice)
	assert.Equal(t, 99999.0, got.MaxPrice)
	assert.Equal(t, 7.0, got.Rating)
}

func TestValues_RoundTrip(t *testing.T) {
	states := []State{
		Defaults(),
		{Search: "red shoes", Sort: "-price", MinPrice: 50, MaxPrice: 200, Rating: 4, Page: 2},
		{Sort: "+price", MinPrice: 0.5, MaxPrice: 10.25, Page: 7},
	}
	for _, s := range states {
		got := FromValues(s.Values())
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestValues_WritesEveryKey(t *testing.T) {
	v := Defaults().Values()
	for _, k := range []string{KeySearch, KeySort, KeyMinPrice, KeyMaxPrice, KeyRating, KeyPage} {
		_, ok := v[k]
		assert.True(t, ok, "missing %s", k)
	}
	assert.Equal(t, "1000", v.Get(KeyMaxPrice))
}

func TestAPIQuery_FromCategoryURL(t *testing.T) {
	u, err := url.Parse("/categories/c1/products?minPrice=50&maxPrice=200&page=2")
	require.NoError(t, err)

	q := FromValues(u.Query()).APIQuery()
	assert.Equal(t, "50", q.Get("price[gte]"))
	assert.Equal(t, "200", q.Get("price[lte]"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "0", q.Get("ratingsAverage[gte]"))
	assert.Equal(t, "", q.Get("sort"))
}

func TestSynchronizer_SubmitResetsPage(t *testing.T) {
	s := NewSynchronizer("/products")
	s.SetPage(3)

	next := s.Current()
	next.Search = "lamp"
	got := s.Submit(next)

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, "lamp", s.Current().Search)
	assert.Equal(t, "1", s.URL().Query().Get(KeyPage))
}

func TestSynchronizer_PageOnlyChangeKeepsPage(t *testing.T) {
	s := NewSynchronizer("/products")
	next := s.Current()
	next.Sort = "-price"
	s.Submit(next)

	pageOnly := s.Current()
	pageOnly.Page = 4
	got := s.Submit(pageOnly)
	assert.Equal(t, 4, got.Page)

	got = s.SetPage(5)
	assert.Equal(t, 5, got.Page)
	assert.Equal(t, "-price", got.Sort)
}

func TestSynchronizer_ClearedFieldsRevertToDefaults(t *testing.T) {
	s := NewSynchronizer("/brands/b1/products")
	s.Submit(State{Search: "x", Sort: "-price", MinPrice: 5, MaxPrice: 50, Rating: 3, Page: 1})

	s.Submit(Defaults())
	assert.Equal(t, Defaults(), s.Current())
	assert.Equal(t, Defaults().Values(), s.URL().Query())
}

func TestSynchronizer_Open(t *testing.T) {
	s, err := Open("/categories/c1/products?minPrice=50&maxPrice=200&page=2")
	require.NoError(t, err)

	assert.Equal(t, "/categories/c1/products", s.Path())
	cur := s.Current()
	assert.Equal(t, 50.0, cur.MinPrice)
	assert.Equal(t, 200.0, cur.MaxPrice)
	assert.Equal(t, 2, cur.Page)

	_, err = Open("?page=2")
	require.Error(t, err)
}

func TestSynchronizer_Reset(t *testing.T) {
	s := NewSynchronizer("/products")
	s.Submit(State{Search: "x", MaxPrice: 10, Page: 1})
	assert.Equal(t, Defaults(), s.Reset())
	assert.Equal(t, Defaults(), s.Current())
}

func TestApply(t *testing.T) {
	got, err := Defaults().Apply("search=desk lamp", "sort=-ratingsAverage", "min=10", "maxPrice=99.5", "rating=4", "page=2")
	require.NoError(t, err)
	want := State{Search: "desk lamp", Sort: "-ratingsAverage", MinPrice: 10, MaxPrice: 99.5, Rating: 4, Page: 2}
	assert.Equal(t, want, got)

	cleared, err := got.Apply("max=", "search=")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cleared.MaxPrice)
	assert.Equal(t, "", cleared.Search)
}

func TestApply_Errors(t *testing.T) {
	_, err := Defaults().Apply("colour=red")
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = Defaults().Apply("min=abc")
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Defaults().Apply("page")
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Defaults().Apply("page=0")
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestApply_RejectsNonFiniteNumbers(t *testing.T) {
	for _, a := range []string{"min=NaN", "max=inf", "maxPrice=+Inf", "rating=-Inf"} {
		t.Run(a, func(t *testing.T) {
			_, err := Defaults().Apply(a)
			require.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestSynchronizer_SubmittedStateMatchesURL(t *testing.T) {
	s := NewSynchronizer("/products")
	next, err := s.Current().Apply("min=10", "max=1e3")
	require.NoError(t, err)

	got := s.Submit(next)
	assert.Equal(t, got, s.Current())
	assert.Equal(t, got, FromValues(s.URL().Query()))
	assert.Equal(t, "10", got.APIQuery().Get("price[gte]"))
}
