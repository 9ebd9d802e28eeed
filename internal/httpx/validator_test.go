package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookcatalog/internal/validation"
)

type sampleRequest struct {
	Email  string   `json:"email" validate:"required,email"`
	Title  string   `json:"title" validate:"required,max=10"`
	Rating int      `json:"rating" validate:"gte=1,lte=10"`
	Tags   []string `json:"tags" validate:"omitempty,min=1"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(sampleRequest{Email: "a@example.com", Title: "Dune", Rating: 5}))
	})

	t.Run("failures use json names", func(t *testing.T) {
		failures := ValidateStruct(sampleRequest{Email: "nope", Title: "", Rating: 11})
		assert.Equal(t, []validation.Failure{
			{Field: "email", Message: "email must be a valid email address"},
			{Field: "title", Message: "title is required"},
			{Field: "rating", Message: "rating must be at most 10"},
		}, failures)
	})
}
