package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logging"
	"bookcatalog/internal/rating"
	"bookcatalog/internal/validation"
)

var (
	words = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors = []string{"Ursula K. Le Guin", "Frank Herbert", "Mary Shelley", "Isaac Asimov", "Octavia E. Butler", "Italo Calvino"}
)

func randomWord(rng *rand.Rand) string {
	return words[rng.Intn(len(words))]
}

// randomBook builds a book the service will accept; duplicates of an
// existing slug are rejected by validation and skipped by the caller.
func randomBook(rng *rand.Rand, i int) *book.Book {
	year := 1950 + rng.Intn(time.Now().Year()-1950+1)
	picked := []string{genres[rng.Intn(len(genres))]}
	if g := genres[rng.Intn(len(genres))]; g != picked[0] {
		picked = append(picked, g)
	}
	return &book.Book{
		ID:            uuid.New(),
		Title:         fmt.Sprintf("The %s of %s %d", randomWord(rng), randomWord(rng), i+1),
		Author:        authors[rng.Intn(len(authors))],
		Description:   fmt.Sprintf("This is a book about %s.", randomWord(rng)),
		YearOfRelease: year,
		NumberOfPages: 100 + rng.Intn(800),
		Genres:        picked,
	}
}

func seed(ctx context.Context, books *book.Service, ratings *rating.Service, count, raters int, rng *rand.Rand, log *zap.Logger) (created int, err error) {
	userIDs := make([]uuid.UUID, raters)
	for i := range userIDs {
		userIDs[i] = uuid.New()
	}

	for i := 0; i < count; i++ {
		b := randomBook(rng, i)
		if err := books.Create(ctx, b); err != nil {
			if _, ok := validation.As(err); ok {
				log.Warn("skipping book", zap.String("title", b.Title), zap.Error(err))
				continue
			}
			return created, err
		}
		created++

		for _, userID := range userIDs {
			if rng.Intn(2) == 0 {
				continue
			}
			if _, err := ratings.RateBook(ctx, b.ID, userID, rating.MinRating+rng.Intn(rating.MaxRating)); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

func main() {
	count := flag.Int("count", 100, "number of books to create")
	raters := flag.Int("raters", 5, "number of synthetic users rating each book")
	flag.Parse()

	config.LoadEnvFiles()
	log := logging.New(config.LogConfig{Level: os.Getenv("LOG_LEVEL")})
	defer func() { _ = log.Sync() }()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = config.DefaultDSN
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("connect to database", zap.String("dsn", config.RedactDSN(dsn)), zap.Error(err))
	}
	defer pool.Close()

	bookRepo := book.NewPostgresRepo(pool, 5*time.Second)
	ratingRepo := rating.NewPostgresRepo(pool, 5*time.Second)
	quiet := log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	books := book.NewService(bookRepo, ratingRepo, quiet)
	ratings := rating.NewService(ratingRepo, bookRepo, quiet)

	log.Info("seeding books", zap.Int("count", *count), zap.Int("raters", *raters))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created, err := seed(ctx, books, ratings, *count, *raters, rng, log)
	if err != nil {
		log.Fatal("seed failed", zap.Int("created", created), zap.Error(err))
	}

	_, total, err := books.GetAll(ctx, book.ListOptions{Page: 1, PageSize: book.MinPageSize})
	if err != nil {
		log.Fatal("count books", zap.Error(err))
	}
	log.Info("seed finished", zap.Int("created", created), zap.Int("total", total))
}
