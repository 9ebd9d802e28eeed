package rating

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=rating

// Repository persists one rating per (book, user) pair.
type Repository interface {
	RateBook(ctx context.Context, bookID, userID uuid.UUID, rating int) error
	GetRating(ctx context.Context, bookID, userID uuid.UUID) (average *float64, userRating *int, err error)
	DeleteRating(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
	GetRatingsForUser(ctx context.Context, userID uuid.UUID) ([]BookRating, error)
}

// BookChecker confirms a book exists before a rating is written.
type BookChecker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// CacheEvicter drops cached responses recorded under a tag.
type CacheEvicter interface {
	EvictByTag(ctx context.Context, tag string) error
}
