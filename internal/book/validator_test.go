package book

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/validation"
)

func validBook() *Book {
	b := &Book{
		ID:            uuid.New(),
		Title:         "Lord of the Rings",
		Author:        "J. R. R. Tolkien",
		Description:   "A journey",
		YearOfRelease: 1954,
		NumberOfPages: 1178,
		Genres:        []string{"adventure", "fantasy"},
	}
	b.RefreshSlug()
	return b
}

func fixedValidator(repo slugFinder) *Validator {
	v := NewValidator(repo)
	v.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return v
}

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := validBook()
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(nil, nil)

		assert.NoError(t, fixedValidator(repo).Validate(ctx, b))
	})

	t.Run("reports every violated rule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := &Book{YearOfRelease: 2027}
		b.RefreshSlug()
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(nil, nil)

		err := fixedValidator(repo).Validate(ctx, b)

		var verr *validation.Error
		require.True(t, errors.As(err, &verr))
		for _, field := range []string{"id", "title", "author", "genres", "year_of_release", "number_of_pages"} {
			assert.True(t, verr.Has(field), "expected failure on %s", field)
		}
		assert.False(t, verr.Has("slug"))
	})

	t.Run("slug taken by a different book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := validBook()
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(&Book{ID: uuid.New(), Slug: b.Slug}, nil)

		err := fixedValidator(repo).Validate(ctx, b)

		var verr *validation.Error
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Failures, 1)
		assert.Equal(t, "slug", verr.Failures[0].Field)
		assert.Contains(t, verr.Failures[0].Message, "already exists")
	})

	t.Run("slug owned by the same book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := validBook()
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(&Book{ID: b.ID, Slug: b.Slug}, nil)

		assert.NoError(t, fixedValidator(repo).Validate(ctx, b))
	})

	t.Run("current year is allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := validBook()
		b.YearOfRelease = 2026
		b.RefreshSlug()
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(nil, nil)

		assert.NoError(t, fixedValidator(repo).Validate(ctx, b))
	})

	t.Run("store failure is not a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		b := validBook()
		boom := errors.New("connection reset")
		repo.EXPECT().GetBySlug(gomock.Any(), b.Slug, nil).Return(nil, boom)

		err := fixedValidator(repo).Validate(ctx, b)
		assert.ErrorIs(t, err, boom)
		var verr *validation.Error
		assert.False(t, errors.As(err, &verr))
	})
}

func strPtr(s string) *string { return &s }

func TestValidateListOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      ListOptions
		wantField string
	}{
		{name: "max page size", opts: ListOptions{Page: 1, PageSize: 25}},
		{name: "min page size", opts: ListOptions{Page: 1, PageSize: 1}},
		{name: "page size zero", opts: ListOptions{Page: 1, PageSize: 0}, wantField: "page_size"},
		{name: "page size 26", opts: ListOptions{Page: 1, PageSize: 26}, wantField: "page_size"},
		{name: "page zero", opts: ListOptions{Page: 0, PageSize: 10}, wantField: "page"},
		{name: "last allowed page", opts: ListOptions{Page: MaxPage, PageSize: MaxPageSize}},
		{name: "page past the offset range", opts: ListOptions{Page: MaxPage + 1, PageSize: 10}, wantField: "page"},
		{name: "page that would overflow the offset", opts: ListOptions{Page: math.MaxInt / 10, PageSize: 25}, wantField: "page"},
		{name: "sort by title", opts: ListOptions{Page: 1, PageSize: 10, SortField: strPtr("title")}},
		{name: "sort field is case-insensitive", opts: ListOptions{Page: 1, PageSize: 10, SortField: strPtr("YearOfRelease")}},
		{name: "sort by description", opts: ListOptions{Page: 1, PageSize: 10, SortField: strPtr("description")}, wantField: "sort_by"},
		{name: "sort by injection", opts: ListOptions{Page: 1, PageSize: 10, SortField: strPtr("title; drop table books")}, wantField: "sort_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListOptions(tt.opts)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			assert.True(t, verr.Has(tt.wantField))
		})
	}
}
