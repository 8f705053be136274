package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	t.Run("hash differs from plaintext", func(t *testing.T) {
		t.Parallel()

		hash, err := verifier.Hash("Sup3r$ecret")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "Sup3r$ecret", hash)
	})

	t.Run("compare succeeds for matching password", func(t *testing.T) {
		t.Parallel()

		hash, err := verifier.Hash("Sup3r$ecret")
		require.NoError(t, err)

		assert.NoError(t, verifier.Compare(hash, "Sup3r$ecret"))
	})

	t.Run("compare fails for wrong password", func(t *testing.T) {
		t.Parallel()

		hash, err := verifier.Hash("Sup3r$ecret")
		require.NoError(t, err)

		assert.Error(t, verifier.Compare(hash, "Wr0ng$ecret"))
	})

	t.Run("same password hashes to different values", func(t *testing.T) {
		t.Parallel()

		first, err := verifier.Hash("Sup3r$ecret")
		require.NoError(t, err)
		second, err := verifier.Hash("Sup3r$ecret")
		require.NoError(t, err)

		// bcrypt salts every hash
		assert.NotEqual(t, first, second)
	})
}
