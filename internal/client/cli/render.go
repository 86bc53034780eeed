package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/filter"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/listing"
	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// failureText is what the user sees for err: the server's message when
// there is one.
func failureText(err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return err.Error()
}

// renderListing prints one phase of a listing. It returns the load error
// in the error phase.
func renderListing[T any](w io.Writer, st listing.State[T], noun string, line func(T) string) error {
	switch st.Phase {
	case listing.Loading:
		fmt.Fprintln(w, "Loading...")
	case listing.Empty:
		fmt.Fprintf(w, "No %s found.\n", noun)
	case listing.Failed:
		fmt.Fprintf(w, "Failed to load %s: %s\n", noun, failureText(st.Err))
		return st.Err
	case listing.Populated:
		for _, item := range st.Items {
			fmt.Fprintln(w, "  "+line(item))
		}
		if st.Pages > 0 {
			fmt.Fprintf(w, "%d page(s)\n", st.Pages)
		}
		if st.Results > 0 {
			fmt.Fprintf(w, "%d result(s)\n", st.Results)
		}
	}
	return nil
}

func productLine(p models.Product) string { return p.String() }

func categoryLine(c models.Category) string { return fmt.Sprintf("%s [%s]", c.Title, c.ID) }

func brandLine(b models.Brand) string { return fmt.Sprintf("%s [%s]", b.Title, b.ID) }

func userLine(u models.User) string { return fmt.Sprintf("%s [%s]", u, u.ID) }

func renderFilter(w io.Writer, s filter.State) {
	fmt.Fprintf(w, "  search   = %q\n", s.Search)
	fmt.Fprintf(w, "  sort     = %q (%s)\n", s.Sort, sortLabel(s.Sort))
	fmt.Fprintf(w, "  minPrice = %s\n", strconv.FormatFloat(s.MinPrice, 'f', -1, 64))
	fmt.Fprintf(w, "  maxPrice = %s\n", strconv.FormatFloat(s.MaxPrice, 'f', -1, 64))
	fmt.Fprintf(w, "  rating   = %s\n", strconv.FormatFloat(s.Rating, 'f', -1, 64))
	fmt.Fprintf(w, "  page     = %d\n", s.Page)
	fmt.Fprint(w, "Sort options:")
	for _, o := range filter.SortOptions {
		if o.Key == "" {
			continue
		}
		fmt.Fprintf(w, " %s (%s)", o.Key, o.Label)
	}
	fmt.Fprintln(w)
}

func sortLabel(key string) string {
	for _, o := range filter.SortOptions {
		if o.Key == key {
			return o.Label
		}
	}
	return "custom"
}

func renderProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "%s [%s]\n", p.Title, p.ID)
	fmt.Fprintf(w, "  Price:    $%s\n", p.Price)
	fmt.Fprintf(w, "  Rating:   %s (%s reviews)\n", p.RatingsAverage, p.RatingsQuantity)
	fmt.Fprintf(w, "  Brand:    %s\n", p.Brand)
	fmt.Fprintf(w, "  Category: %s\n", p.Category)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	if p.ImageCover != "" {
		fmt.Fprintf(w, "  Cover:    %s\n", p.ImageCover)
	}
	for _, img := range p.Images {
		fmt.Fprintf(w, "  Image:    %s\n", img)
	}
	if len(p.Reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	fmt.Fprintln(w, "Reviews:")
	for _, r := range p.Reviews {
		fmt.Fprintf(w, "  ★%s %s: %s [%s]\n", r.Rating, r.User.Name, r.Review, r.ID)
	}
}

func renderStats(w io.Writer, s *models.ProductStats) {
	fmt.Fprintf(w, "  Products:       %s\n", s.NumProducts)
	fmt.Fprintf(w, "  Ratings:        %s\n", s.NumRatings)
	fmt.Fprintf(w, "  Average rating: %s\n", s.AvgRating)
	fmt.Fprintf(w, "  Average price:  $%s\n", s.AvgPrice)
	fmt.Fprintf(w, "  Price range:    $%s - $%s\n", s.MinPrice, s.MaxPrice)
}

// renderFieldErrors prints the field errors inside err, if any.
func renderFieldErrors(w io.Writer, err error) {
	var fe forms.FieldErrors
	if !errors.As(err, &fe) {
		return
	}
	for _, f := range fe.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", f, fe[f])
	}
}
