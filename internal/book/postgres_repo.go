package book

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const insertBook = `
			INSERT INTO books (id, slug, title, author, description, year_of_release, number_of_pages)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.Exec(ctx, insertBook,
			b.ID, b.Slug, b.Title, b.Author, b.Description, b.YearOfRelease, b.NumberOfPages,
		); err != nil {
			return err
		}
		return insertGenres(ctx, tx, b.ID, b.Genres)
	})
	return errors.Wrapf(err, "create book %s", b.ID)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Book, error) {
	query, args, err := buildGetByIDQuery(id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "build get book query")
	}
	b, err := r.getOne(ctx, query, args)
	return b, errors.Wrapf(err, "get book %s", id)
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*Book, error) {
	query, args, err := buildGetBySlugQuery(slug, userID)
	if err != nil {
		return nil, errors.Wrap(err, "build get book query")
	}
	b, err := r.getOne(ctx, query, args)
	return b, errors.Wrapf(err, "get book by slug %q", slug)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, args []any) (*Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// List runs the page query and the count query concurrently; each one
// acquires its own pooled connection.
func (r *PostgresRepo) List(ctx context.Context, opts ListOptions) ([]Book, int, error) {
	listSQL, listArgs, err := buildListQuery(opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build list query")
	}
	countSQL, countArgs, err := buildCountQuery(opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build count query")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		books []Book
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.db.Query(gctx, listSQL, listArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		books = make([]Book, 0, opts.PageSize)
		for rows.Next() {
			b, err := scanBook(rows)
			if err != nil {
				return err
			}
			books = append(books, *b)
		}
		return rows.Err()
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, countSQL, countArgs...).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, errors.Wrap(err, "list books")
	}
	return books, total, nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var updated bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const updateBook = `
			UPDATE books
			SET slug = $2, title = $3, author = $4, description = $5,
			    year_of_release = $6, number_of_pages = $7
			WHERE id = $1`
		tag, err := tx.Exec(ctx, updateBook,
			b.ID, b.Slug, b.Title, b.Author, b.Description, b.YearOfRelease, b.NumberOfPages,
		)
		if err != nil {
			return err
		}
		if updated = tag.RowsAffected() > 0; !updated {
			return nil
		}
		if err := deleteGenres(ctx, tx, b.ID); err != nil {
			return err
		}
		return insertGenres(ctx, tx, b.ID, b.Genres)
	})
	if err != nil {
		return false, errors.Wrapf(err, "update book %s", b.ID)
	}
	return updated, nil
}

func (r *PostgresRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, errors.Wrapf(err, "check book %s exists", id)
}

// DeleteByID removes the genres, the ratings and the book row in one
// transaction.
func (r *PostgresRepo) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var deleted bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := deleteGenres(ctx, tx, id); err != nil {
			return err
		}
		if err := deleteRatings(ctx, tx, id); err != nil {
			return err
		}
		var err error
		deleted, err = deleteBook(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, errors.Wrapf(err, "delete book %s", id)
	}
	return deleted, nil
}

func insertGenres(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, genres []string) error {
	if len(genres) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, name := range genres {
		batch.Queue(`INSERT INTO genres (book_id, name, position) VALUES ($1, $2, $3)`, bookID, name, i)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func deleteGenres(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM genres WHERE book_id = $1`, bookID)
	return err
}

func deleteRatings(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM ratings WHERE book_id = $1`, bookID)
	return err
}

func deleteBook(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanBook(row pgx.Row) (*Book, error) {
	var b Book
	if err := row.Scan(
		&b.ID, &b.Slug, &b.Title, &b.Author, &b.Description,
		&b.YearOfRelease, &b.NumberOfPages, &b.Rating, &b.UserRating, &b.Genres,
	); err != nil {
		return nil, err
	}
	if b.Genres == nil {
		b.Genres = []string{}
	}
	return &b, nil
}
