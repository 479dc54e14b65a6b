package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numberPage struct {
	Items []int `json:"items"`
}

func numberKey(pageIndex int, prev *numberPage) (Key, bool) {
	if prev != nil && len(prev.Items) == 0 {
		return Key{}, false
	}
	return NewKey("/numbers", url.Values{"page": {strconv.Itoa(pageIndex + 1)}}), true
}

// numberSource serves total items ten per page and counts fetches
func numberSource(total int, calls *atomic.Int32) FetcherFunc {
	return func(_ context.Context, key Key) (json.RawMessage, error) {
		calls.Add(1)
		page, _ := strconv.Atoi(key.Param("page"))
		items := []int{}
		for i := (page - 1) * 10; i < page*10 && i < total; i++ {
			items = append(items, i)
		}
		return json.Marshal(numberPage{Items: items})
	}
}

func TestInfiniteWalksUntilEmptyPage(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	f := NewInfinite[numberPage](NewCache(), numberSource(25, &calls), numberKey)

	require.NoError(t, f.SetSize(ctx, 3))
	assert.False(t, f.Exhausted())

	pages, err := f.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Items, 10)
	assert.Len(t, pages[1].Items, 10)
	assert.Len(t, pages[2].Items, 5)
	assert.EqualValues(t, 3, calls.Load())

	require.NoError(t, f.SetSize(ctx, 4))
	assert.True(t, f.Exhausted())
	assert.EqualValues(t, 4, calls.Load())

	// a fifth page is never requested after the empty fourth
	require.NoError(t, f.SetSize(ctx, 6))
	assert.EqualValues(t, 4, calls.Load())

	pages, err = f.Pages()
	require.NoError(t, err)
	assert.Len(t, pages, 4)
}

func TestInfiniteServesSeededPages(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache()
	seed, err := json.Marshal(numberPage{Items: []int{1, 2, 3}})
	require.NoError(t, err)
	require.NoError(t, cache.Hydrate(map[string]json.RawMessage{"/numbers?page=1": seed}))

	f := NewInfinite[numberPage](cache, numberSource(3, &calls), numberKey)
	require.NoError(t, f.SetSize(context.Background(), 1))
	assert.Zero(t, calls.Load())

	pages, err := f.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, []int{1, 2, 3}, pages[0].Items)
}
