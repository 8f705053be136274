package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("entity-specific errors wrap their category", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
		assert.ErrorIs(t, ErrTaskNotFound, ErrNotFound)
		assert.ErrorIs(t, ErrUsernameExists, ErrDuplicate)
		assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
	})

	t.Run("category helpers see through wrapping", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrTaskNotFound)))
		assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrEmailExists)))

		assert.False(t, IsNotFoundError(ErrDuplicate))
		assert.False(t, IsDuplicateError(ErrNotFound))
		assert.False(t, IsNotFoundError(errors.New("unrelated")))
	})
}
