package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCanonicalForm(t *testing.T) {
	a := NewKey("/api/products", url.Values{"page": {"2"}, "sort": {"id"}})
	b, err := ParseKey("/api/products?sort=id&page=2")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "/api/products?page=2&sort=id", a.String())
	assert.Equal(t, "2", a.Param("page"))
	assert.Equal(t, "", a.Param("missing"))
}

func TestKeyWithoutQuery(t *testing.T) {
	key, err := ParseKey("/api/products/7")
	require.NoError(t, err)
	assert.Equal(t, "/api/products/7", key.String())
	assert.False(t, key.IsZero())
	assert.True(t, Key{}.IsZero())

	_, err = ParseKey("?page=1")
	assert.Error(t, err)
}
