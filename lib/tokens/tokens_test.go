package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTokenKey(t *testing.T) {
	key := GenerateTokenKey()
	assert.Len(t, key, TokenKeyLength)
	assert.NotEqual(t, key, GenerateTokenKey())
}

func TestParseAuthHeader(t *testing.T) {
	key, ok := parseAuthHeader("Token abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", key)

	key, ok = parseAuthHeader("Bearer abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", key)

	_, ok = parseAuthHeader("Basic abc123")
	assert.False(t, ok)

	_, ok = parseAuthHeader("Token ")
	assert.False(t, ok)

	_, ok = parseAuthHeader("")
	assert.False(t, ok)
}
