package book

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage. Lookups return a
// nil book when nothing matches.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Book, error)
	GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*Book, error)
	List(ctx context.Context, opts ListOptions) ([]Book, int, error)
	Update(ctx context.Context, b *Book) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// RatingReader supplies rating data merged into a book after an update.
type RatingReader interface {
	GetRating(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (average *float64, userRating *int, err error)
}

// CacheEvicter drops cached responses recorded under a tag.
type CacheEvicter interface {
	EvictByTag(ctx context.Context, tag string) error
}
