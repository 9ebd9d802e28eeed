package book

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides book-related business logic.
type Service struct {
	repo      Repository
	ratings   RatingReader
	validator *Validator
	log       *zap.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, ratings RatingReader, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		ratings:   ratings,
		validator: NewValidator(repo),
		log:       logger.Named("book_service"),
	}
}

func (s *Service) elapsed(msg string, start time.Time, fields ...zap.Field) {
	s.log.Info(msg, append(fields, zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))...)
}

// Create validates and stores a new book. The slug is derived here.
func (s *Service) Create(ctx context.Context, b *Book) error {
	s.log.Info("creating book", zap.Stringer("book_id", b.ID), zap.String("title", b.Title))
	start := time.Now()
	defer s.elapsed("book create finished", start, zap.Stringer("book_id", b.ID))

	b.RefreshSlug()
	if err := s.validator.Validate(ctx, b); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Error("create book failed", zap.Stringer("book_id", b.ID), zap.Error(err))
		return err
	}
	return nil
}

// GetByID returns nil when the book does not exist.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Book, error) {
	s.log.Info("retrieving book", zap.Stringer("book_id", id))
	start := time.Now()
	defer s.elapsed("book retrieved", start, zap.Stringer("book_id", id))

	b, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		s.log.Error("get book failed", zap.Stringer("book_id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

// GetBySlug returns nil when no book carries the slug.
func (s *Service) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*Book, error) {
	s.log.Info("retrieving book by slug", zap.String("slug", slug))
	start := time.Now()
	defer s.elapsed("book retrieved by slug", start, zap.String("slug", slug))

	b, err := s.repo.GetBySlug(ctx, slug, userID)
	if err != nil {
		s.log.Error("get book by slug failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return b, nil
}

// GetAll validates the listing options and returns one page plus the
// number of books matching the filters.
func (s *Service) GetAll(ctx context.Context, opts ListOptions) ([]Book, int, error) {
	s.log.Info("retrieving books", zap.Int("page", opts.Page), zap.Int("page_size", opts.PageSize))
	start := time.Now()
	defer s.elapsed("books retrieved", start)

	if err := ValidateListOptions(opts); err != nil {
		return nil, 0, err
	}

	books, total, err := s.repo.List(ctx, opts)
	if err != nil {
		s.log.Error("list books failed", zap.Error(err))
		return nil, 0, err
	}
	return books, total, nil
}

// Update replaces a book's fields and genres. It returns nil when the book
// does not exist; the existence check runs before validation so an unknown
// id is never reported as invalid input. When userID is set the result
// carries the current ratings.
func (s *Service) Update(ctx context.Context, b *Book, userID *uuid.UUID) (*Book, error) {
	s.log.Info("updating book", zap.Stringer("book_id", b.ID))
	start := time.Now()
	defer s.elapsed("book update finished", start, zap.Stringer("book_id", b.ID))

	exists, err := s.repo.ExistsByID(ctx, b.ID)
	if err != nil {
		s.log.Error("update book failed", zap.Stringer("book_id", b.ID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	b.RefreshSlug()
	if err := s.validator.Validate(ctx, b); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		s.log.Error("update book failed", zap.Stringer("book_id", b.ID), zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	if userID != nil {
		avg, mine, err := s.ratings.GetRating(ctx, b.ID, *userID)
		if err != nil {
			s.log.Error("load ratings after update failed", zap.Stringer("book_id", b.ID), zap.Error(err))
			return nil, err
		}
		b.Rating, b.UserRating = avg, mine
	}
	return b, nil
}

// DeleteByID reports whether a book was removed.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	s.log.Info("deleting book", zap.Stringer("book_id", id))
	start := time.Now()
	defer s.elapsed("book delete finished", start, zap.Stringer("book_id", id))

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.log.Error("delete book failed", zap.Stringer("book_id", id), zap.Error(err))
		return false, err
	}
	return deleted, nil
}
