package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, algorithm := range []string{AlgorithmBcrypt, AlgorithmArgon2id} {
		t.Run(algorithm, func(t *testing.T) {
			t.Parallel()

			h, err := New(algorithm, bcrypt.MinCost)
			require.NoError(t, err)

			hash, err := h.Hash("secret1")
			require.NoError(t, err)
			assert.NotEqual(t, "secret1", hash)

			assert.True(t, h.Verify("secret1", hash))
			assert.False(t, h.Verify("secret2", hash))
			assert.False(t, h.Verify("", hash))
		})
	}
}

func TestHasher_Salted(t *testing.T) {
	t.Parallel()

	h, err := New(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_VerifiesOtherAlgorithm(t *testing.T) {
	t.Parallel()

	argon, err := New(AlgorithmArgon2id, 0)
	require.NoError(t, err)
	bc, err := New(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	argonHash, err := argon.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2id$"))
	assert.True(t, bc.Verify("secret1", argonHash))

	bcryptHash, err := bc.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, argon.Verify("secret1", bcryptHash))
}

func TestHasher_MalformedHash(t *testing.T) {
	t.Parallel()

	h, err := New(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, h.Verify("secret1", ""))
	assert.False(t, h.Verify("secret1", "not-a-hash"))
	assert.False(t, h.Verify("secret1", "$argon2id$garbage"))
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	_, err := New("md5", 10)
	assert.Error(t, err)

	_, err = New(AlgorithmBcrypt, 1)
	assert.Error(t, err)

	_, err = New(AlgorithmBcrypt, 100)
	assert.Error(t, err)
}

func TestHasher_EmptyPassword(t *testing.T) {
	t.Parallel()

	h, err := New(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash("")
	assert.Error(t, err)
}
