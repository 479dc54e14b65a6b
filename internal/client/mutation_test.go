package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flipLiked(d *detail) { d.IsLiked = !d.IsLiked }

func TestMutationAppliesSynchronously(t *testing.T) {
	cache := NewCache()
	key := NewKey("/api/products/1", nil)
	require.NoError(t, Store(cache, key, detail{ID: 1, IsLiked: false}))

	release := make(chan struct{})
	m := NewMutation(cache, key)
	assert.Equal(t, MutationIdle, m.State())

	done, err := m.Run(context.Background(), Edit(flipLiked), func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	// the edit is visible before the server answers
	got, _, err := Load[detail](cache, key)
	require.NoError(t, err)
	assert.True(t, got.IsLiked)
	assert.Equal(t, MutationPending, m.State())

	_, err = m.Run(context.Background(), Edit(flipLiked), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrMutationPending)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, MutationConfirmed, m.State())

	got, _, err = Load[detail](cache, key)
	require.NoError(t, err)
	assert.True(t, got.IsLiked)
}

func TestMutationRollsBackOnRejection(t *testing.T) {
	cache := NewCache()
	key := NewKey("/api/products/1", nil)
	require.NoError(t, Store(cache, key, detail{ID: 1}))
	before, _ := cache.Get(key)

	m := NewMutation(cache, key)
	sendErr := errors.New("server said no")
	done, err := m.Run(context.Background(), Edit(flipLiked), func(context.Context) error { return sendErr })
	require.NoError(t, err)

	assert.ErrorIs(t, <-done, sendErr)
	assert.Equal(t, MutationRejected, m.State())
	assert.ErrorIs(t, m.Err(), sendErr)

	after, _ := cache.Get(key)
	assert.Equal(t, string(before), string(after))

	// a rejected mutation can run again
	done, err = m.Run(context.Background(), Edit(flipLiked), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.NoError(t, <-done)
	assert.Equal(t, MutationConfirmed, m.State())
}

func TestMutationWithoutData(t *testing.T) {
	m := NewMutation(NewCache(), NewKey("/api/products/1", nil))

	_, err := m.Run(context.Background(), Edit(flipLiked), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, MutationIdle, m.State())
}
