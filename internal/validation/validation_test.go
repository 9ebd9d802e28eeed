package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_CollectsEveryFailureInOrder(t *testing.T) {
	v := &Error{}
	v.Check(false, "title", "must not be empty")
	v.Check(true, "author", "must not be empty")
	v.Check(false, "pages", "must be greater than 0")

	err := v.Err()
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []Failure{
		{Field: "title", Message: "must not be empty"},
		{Field: "pages", Message: "must be greater than 0"},
	}, verr.Failures)
	assert.True(t, verr.Has("pages"))
	assert.False(t, verr.Has("author"))
	assert.Equal(t, "validation failed: title: must not be empty; pages: must be greater than 0", err.Error())
}

func TestError_NoFailuresIsNil(t *testing.T) {
	v := &Error{}
	v.Check(true, "title", "unused")
	assert.NoError(t, v.Err())
}

func TestAs_FindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", New("slug", "taken"))
	verr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "slug", verr.Failures[0].Field)

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
}
