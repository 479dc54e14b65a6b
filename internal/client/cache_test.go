package client

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detail struct {
	ID      int  `json:"id"`
	IsLiked bool `json:"isLiked"`
}

func TestCacheHydrate(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Hydrate(map[string]json.RawMessage{
		"/api/products?page=1": json.RawMessage(`{"ok":true}`),
	}))

	data, ok := c.Get(NewKey("/api/products", map[string][]string{"page": {"1"}}))
	require.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, 1, c.Len())

	assert.Error(t, c.Hydrate(map[string]json.RawMessage{"%zz": nil}))
}

func TestCacheEdit(t *testing.T) {
	c := NewCache()
	key := NewKey("/api/products/1", nil)

	err := c.Mutate(key, Edit(func(d *detail) { d.IsLiked = true }))
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, 0, c.Len())

	require.NoError(t, Store(c, key, detail{ID: 1}))
	require.NoError(t, c.Mutate(key, Edit(func(d *detail) { d.IsLiked = !d.IsLiked })))

	got, ok, err := Load[detail](c, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, detail{ID: 1, IsLiked: true}, got)
}

func TestCacheMutateErrorKeepsEntry(t *testing.T) {
	c := NewCache()
	key := NewKey("/k", nil)
	c.Set(key, json.RawMessage(`1`))

	err := c.Mutate(key, func(json.RawMessage) (json.RawMessage, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)

	data, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, `1`, string(data))

	require.NoError(t, c.Mutate(key, func(json.RawMessage) (json.RawMessage, error) { return nil, nil }))
	_, ok = c.Get(key)
	assert.False(t, ok)
}
