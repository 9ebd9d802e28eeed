package rating

import "github.com/google/uuid"

const (
	MinRating = 1
	MaxRating = 10
)

// BookRating is one rating a user gave, with the book's slug for display.
type BookRating struct {
	BookID uuid.UUID `json:"book_id"`
	Slug   string    `json:"slug"`
	Rating int       `json:"rating"`
}
