package book

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const dialectPostgres = "postgres"

var pg = goqu.Dialect(dialectPostgres)

const (
	tableBooks   = "books"
	tableGenres  = "genres"
	tableRatings = "ratings"
	aliasBook    = "b"
)

var (
	averageRatingExpr = goqu.L(`(SELECT ROUND(AVG(r.rating)::numeric, 1)::float8 FROM ratings r WHERE r.book_id = b.id)`)
	genresExpr        = goqu.L(`COALESCE((SELECT array_agg(g.name ORDER BY g.position) FROM genres g WHERE g.book_id = b.id), '{}'::text[])`)
	noUserRatingExpr  = goqu.L(`NULL::int`)
)

// likePattern wraps a filter in % wildcards after escaping the LIKE
// metacharacters it contains, so the filter is matched literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func userRatingExpr(userID *uuid.UUID) exp.LiteralExpression {
	if userID == nil {
		return noUserRatingExpr
	}
	return goqu.L(`(SELECT ur.rating FROM ratings ur WHERE ur.book_id = b.id AND ur.user_id = ?)`, userID.String())
}

// bookSelect is the projection shared by every read: book columns, the
// rounded average rating, the requesting user's rating and the genre list.
func bookSelect(userID *uuid.UUID) *goqu.SelectDataset {
	return pg.From(goqu.T(tableBooks).As(aliasBook)).
		Prepared(true).
		Select(
			goqu.I("b.id"),
			goqu.I("b.slug"),
			goqu.I("b.title"),
			goqu.I("b.author"),
			goqu.I("b.description"),
			goqu.I("b.year_of_release"),
			goqu.I("b.number_of_pages"),
			averageRatingExpr.As("rating"),
			userRatingExpr(userID).As("user_rating"),
			genresExpr.As("genres"),
		)
}

// listFilters matches title and author case-insensitively (ILIKE).
func listFilters(opts ListOptions) []exp.Expression {
	var where []exp.Expression
	if opts.Title != nil {
		where = append(where, goqu.I("b.title").ILike(likePattern(*opts.Title)))
	}
	if opts.Author != nil {
		where = append(where, goqu.I("b.author").ILike(likePattern(*opts.Author)))
	}
	return where
}

// buildListQuery renders the page query. The sort field is resolved through
// the whitelist; everything else is bound as a parameter. A sort field with
// no direction sorts ascending. Without a sort field no ORDER BY is emitted
// and row order is whatever Postgres returns.
func buildListQuery(opts ListOptions) (string, []any, error) {
	ds := bookSelect(opts.UserID).Where(listFilters(opts)...)

	if opts.SortField != nil {
		col, ok := SortColumn(*opts.SortField)
		if !ok {
			return "", nil, fmt.Errorf("unsupported sort field %q", *opts.SortField)
		}
		ident := goqu.I(aliasBook + "." + col)
		if opts.SortOrder == Descending {
			ds = ds.Order(ident.Desc())
		} else {
			ds = ds.Order(ident.Asc())
		}
	}

	ds = ds.Limit(uint(opts.PageSize)).Offset(uint(opts.Offset()))
	return ds.ToSQL()
}

// buildCountQuery counts every row matching the filters, ignoring paging.
func buildCountQuery(opts ListOptions) (string, []any, error) {
	return pg.From(goqu.T(tableBooks).As(aliasBook)).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(listFilters(opts)...).
		ToSQL()
}

func buildGetByIDQuery(id uuid.UUID, userID *uuid.UUID) (string, []any, error) {
	return bookSelect(userID).Where(goqu.I("b.id").Eq(id.String())).ToSQL()
}

func buildGetBySlugQuery(slug string, userID *uuid.UUID) (string, []any, error) {
	return bookSelect(userID).Where(goqu.I("b.slug").Eq(slug)).ToSQL()
}
