package book

import (
	"github.com/google/uuid"
)

// Book represents a catalog entry. Rating and UserRating are only filled by
// read paths; Slug is derived from Title and YearOfRelease.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	YearOfRelease int       `json:"year_of_release"`
	NumberOfPages int       `json:"number_of_pages"`
	Genres        []string  `json:"genres"`
	Rating        *float64  `json:"rating"`
	UserRating    *int      `json:"user_rating"`
}

// RefreshSlug recomputes the slug from the current title and year.
func (b *Book) RefreshSlug() {
	b.Slug = GenerateSlug(b.Title, b.YearOfRelease)
}

// SortOrder controls the ORDER BY direction of a listing.
type SortOrder int

const (
	Unsorted SortOrder = iota
	Ascending
	Descending
)

// ListOptions describes one page of the book listing.
type ListOptions struct {
	Title     *string
	Author    *string
	SortField *string
	SortOrder SortOrder
	UserID    *uuid.UUID
	Page      int
	PageSize  int
}

// WithUserID returns a copy of o carrying the requesting user.
func (o ListOptions) WithUserID(userID *uuid.UUID) ListOptions {
	o.UserID = userID
	return o
}

// Offset is the number of rows skipped before the requested page.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}
