package rating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (repo *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repo.timeout)
}

func (repo *PostgresRepo) RateBook(ctx context.Context, bookID, userID uuid.UUID, rating int) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	const upsertSQL = `
		INSERT INTO ratings (user_id, book_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET rating = excluded.rating`
	_, err := repo.db.Exec(ctx, upsertSQL, userID, bookID, rating)
	return errors.Wrapf(err, "rate book %s", bookID)
}

// GetRating returns the book's average rounded to one decimal (nil without
// ratings) and the user's own rating (nil when they have not rated it).
func (repo *PostgresRepo) GetRating(ctx context.Context, bookID, userID uuid.UUID) (*float64, *int, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT ROUND(AVG(r.rating)::numeric, 1)::float8,
		       (SELECT ur.rating FROM ratings ur WHERE ur.book_id = $1 AND ur.user_id = $2)
		FROM ratings r
		WHERE r.book_id = $1`
	var (
		average    *float64
		userRating *int
	)
	if err := repo.db.QueryRow(ctx, query, bookID, userID).Scan(&average, &userRating); err != nil {
		return nil, nil, errors.Wrapf(err, "get rating for book %s", bookID)
	}
	return average, userRating, nil
}

func (repo *PostgresRepo) DeleteRating(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	tag, err := repo.db.Exec(ctx, `DELETE FROM ratings WHERE book_id = $1 AND user_id = $2`, bookID, userID)
	if err != nil {
		return false, errors.Wrapf(err, "delete rating for book %s", bookID)
	}
	return tag.RowsAffected() > 0, nil
}

func (repo *PostgresRepo) GetRatingsForUser(ctx context.Context, userID uuid.UUID) ([]BookRating, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT r.book_id, b.slug, r.rating
		FROM ratings r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY b.slug`
	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "list ratings for user %s", userID)
	}
	ratings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[BookRating])
	if err != nil {
		return nil, errors.Wrapf(err, "scan ratings for user %s", userID)
	}
	return ratings, nil
}
