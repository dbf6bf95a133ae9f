package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoSourceRange(t *testing.T) {
	src := CryptoSource{}
	for i := 0; i < 200; i++ {
		v, err := src.IntN(3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	_, err := src.IntN(0)
	assert.Error(t, err)
}

func TestSeededSourceReproducible(t *testing.T) {
	a, b := NewSeededSource(7), NewSeededSource(7)
	for i := 0; i < 20; i++ {
		x, err := a.IntN(100)
		require.NoError(t, err)
		y, err := b.IntN(100)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
	_, err := a.IntN(-1)
	assert.Error(t, err)
}
