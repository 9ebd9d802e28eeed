package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/validation"
)

type Service struct {
	repo  Repository
	books BookChecker
	log   *zap.Logger
}

func NewService(repo Repository, books BookChecker, logger *zap.Logger) *Service {
	return &Service{repo: repo, books: books, log: logger.Named("rating_service")}
}

func (s *Service) elapsed(msg string, start time.Time, fields ...zap.Field) {
	s.log.Info(msg, append(fields, zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))...)
}

// RateBook stores or overwrites the user's rating. It reports false, without
// writing, when the book does not exist.
func (s *Service) RateBook(ctx context.Context, bookID, userID uuid.UUID, rating int) (bool, error) {
	if rating < MinRating || rating > MaxRating {
		return false, validation.New("rating", fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}

	s.log.Info("rating book", zap.Stringer("book_id", bookID), zap.Stringer("user_id", userID))
	start := time.Now()
	defer s.elapsed("book rated", start, zap.Stringer("book_id", bookID))

	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		s.log.Error("rate book failed", zap.Stringer("book_id", bookID), zap.Error(err))
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.repo.RateBook(ctx, bookID, userID, rating); err != nil {
		s.log.Error("rate book failed", zap.Stringer("book_id", bookID), zap.Error(err))
		return false, err
	}
	return true, nil
}

// DeleteRating reports whether a rating row was removed.
func (s *Service) DeleteRating(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	s.log.Info("deleting rating", zap.Stringer("book_id", bookID), zap.Stringer("user_id", userID))
	start := time.Now()
	defer s.elapsed("rating delete finished", start, zap.Stringer("book_id", bookID))

	deleted, err := s.repo.DeleteRating(ctx, bookID, userID)
	if err != nil {
		s.log.Error("delete rating failed", zap.Stringer("book_id", bookID), zap.Error(err))
		return false, err
	}
	return deleted, nil
}

func (s *Service) GetRatingsForUser(ctx context.Context, userID uuid.UUID) ([]BookRating, error) {
	s.log.Info("retrieving user ratings", zap.Stringer("user_id", userID))
	start := time.Now()
	defer s.elapsed("user ratings retrieved", start, zap.Stringer("user_id", userID))

	ratings, err := s.repo.GetRatingsForUser(ctx, userID)
	if err != nil {
		s.log.Error("list user ratings failed", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, err
	}
	return ratings, nil
}
