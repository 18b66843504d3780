package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pa55word")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$"))

	require.NoError(t, VerifyPassword("s3cret-pa55word", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, VerifyPassword("anything", "not-a-bcrypt-hash"), ErrMismatch)
}

func TestBurnVerificationAlwaysFails(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, BurnVerification("whatever"), ErrMismatch)
	require.ErrorIs(t, BurnVerification(""), ErrMismatch)
}
