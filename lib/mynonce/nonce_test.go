package mynonce

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonce(t *testing.T) {
	t.Run("Random nonce", func(t *testing.T) {
		s := NewRandomStringer()
		first, err := s.Create()
		assert.NoError(t, err)
		second, err := s.Create()
		assert.NoError(t, err)

		assert.Len(t, first, 64)
		assert.NotEqual(t, first, second)
	})

	t.Run("Deterministic reader", func(t *testing.T) {
		s := randomStringer{reader: bytes.NewReader(bytes.Repeat([]byte{0xab}, 32))}
		nonce, err := s.Create()
		assert.NoError(t, err)
		assert.Equal(t, strings.Repeat("ab", 32), nonce)
	})

	t.Run("Short reader", func(t *testing.T) {
		s := randomStringer{reader: bytes.NewReader([]byte{0x01})}
		_, err := s.Create()
		assert.Error(t, err)
	})

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, Equal("abc", "abc"))
		assert.False(t, Equal("abc", "abd"))
		assert.False(t, Equal("abc", ""))
	})
}
