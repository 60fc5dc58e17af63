package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandIntn(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := RandIntn(3)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 3)
		seen[v] = true
	}

	require.Len(t, seen, 3)
	require.Panics(t, func() { RandIntn(0) })
}

func TestRandomHex(t *testing.T) {
	s, err := RandomHex(32)
	require.NoError(t, err)
	require.Len(t, s, 64)
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("correct-horse")
	require.NoError(t, err)
	require.True(t, ComparePassword(hashed, "correct-horse"))
	require.False(t, ComparePassword(hashed, "wrong-horse"))
}
