package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// KeyFunc derives the key of zero-based page pageIndex from the previous
// page (nil for the first). Returning false ends the sequence.
type KeyFunc[T any] func(pageIndex int, prev *T) (Key, bool)

// Infinite is an incrementally grown list of pages that all live in the shared cache
type Infinite[T any] struct {
	cache   *Cache
	fetcher Fetcher
	keyFn   KeyFunc[T]

	// loadMu serializes SetSize walks; mu guards the fields below
	loadMu    sync.Mutex
	mu        sync.Mutex
	size      int
	exhausted bool
}

func NewInfinite[T any](cache *Cache, fetcher Fetcher, keyFn KeyFunc[T]) *Infinite[T] {
	return &Infinite[T]{cache: cache, fetcher: fetcher, keyFn: keyFn}
}

// Size is the number of pages wanted
func (f *Infinite[T]) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

// Exhausted reports whether a walk reached a page with no successor
func (f *Infinite[T]) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exhausted
}

// SetSize wants n pages and makes sure each one is cached. Pages already in
// the cache are not fetched again.
func (f *Infinite[T]) SetSize(ctx context.Context, n int) error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	f.mu.Lock()
	f.size = n
	f.mu.Unlock()

	var prev *T
	for i := 0; i < n; i++ {
		key, ok := f.keyFn(i, prev)
		if !ok {
			f.setExhausted(true)
			return nil
		}

		page, ok, err := Load[T](f.cache, key)
		if err != nil {
			return err
		}
		if !ok {
			if page, err = f.fetch(ctx, key); err != nil {
				return err
			}
		}
		prev = &page
	}

	if _, ok := f.keyFn(n, prev); !ok {
		f.setExhausted(true)
	}
	return nil
}

// Pages returns the cached pages in index order up to Size
func (f *Infinite[T]) Pages() ([]T, error) {
	n := f.Size()
	pages := make([]T, 0, n)

	var prev *T
	for i := 0; i < n; i++ {
		key, ok := f.keyFn(i, prev)
		if !ok {
			break
		}
		page, ok, err := Load[T](f.cache, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pages = append(pages, page)
		prev = &pages[len(pages)-1]
	}
	return pages, nil
}

func (f *Infinite[T]) fetch(ctx context.Context, key Key) (T, error) {
	var page T

	data, err := f.fetcher.Fetch(ctx, key)
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return page, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	f.cache.Set(key, data)
	return page, nil
}

func (f *Infinite[T]) setExhausted(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exhausted = v
}
