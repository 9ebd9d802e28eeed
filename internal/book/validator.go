package book

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookcatalog/internal/validation"
)

const (
	MinPageSize = 1
	MaxPageSize = 25
	// MaxPage bounds page so (page-1)*pageSize stays within int32.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// sortColumns whitelists the sortable fields. Keys are lowercase field names
// as accepted from clients; values are the only column names ever written
// into ORDER BY.
var sortColumns = map[string]string{
	"yearofrelease": "year_of_release",
	"title":         "title",
	"author":        "author",
	"numberofpages": "number_of_pages",
}

// SortColumn resolves a client sort field, case-insensitively.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[strings.ToLower(field)]
	return col, ok
}

type slugFinder interface {
	GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*Book, error)
}

// Validator checks books before they are written.
type Validator struct {
	books slugFinder
	now   func() time.Time
}

func NewValidator(books slugFinder) *Validator {
	return &Validator{books: books, now: time.Now}
}

// Validate runs every rule and returns a *validation.Error listing all
// violations. A store failure during the slug check is returned as is.
func (v *Validator) Validate(ctx context.Context, b *Book) error {
	verr := &validation.Error{}
	verr.Check(b.ID != uuid.Nil, "id", "must not be empty")
	verr.Check(strings.TrimSpace(b.Title) != "", "title", "must not be empty")
	verr.Check(strings.TrimSpace(b.Author) != "", "author", "must not be empty")
	verr.Check(len(b.Genres) > 0, "genres", "must not be empty")
	verr.Check(b.YearOfRelease <= v.now().UTC().Year(), "year_of_release", "must not be in the future")
	verr.Check(b.NumberOfPages > 0, "number_of_pages", "must be greater than 0")

	existing, err := v.books.GetBySlug(ctx, b.Slug, nil)
	if err != nil {
		return err
	}
	verr.Check(existing == nil || existing.ID == b.ID, "slug", "This book already exists in the system")

	return verr.Err()
}

// ValidateListOptions checks paging bounds and the sort field whitelist.
func ValidateListOptions(opts ListOptions) error {
	verr := &validation.Error{}
	verr.Check(opts.Page >= 1, "page", "must be greater than or equal to 1")
	verr.Check(opts.Page <= MaxPage, "page", fmt.Sprintf("must be less than or equal to %d", MaxPage))
	verr.Check(opts.PageSize >= MinPageSize && opts.PageSize <= MaxPageSize, "page_size", "You can get between 1 and 25 books per page")
	if opts.SortField != nil {
		_, ok := SortColumn(*opts.SortField)
		verr.Check(ok, "sort_by", "You can only sort by 'title', 'author', 'yearofrelease' or 'numberofpages'")
	}
	return verr.Err()
}
