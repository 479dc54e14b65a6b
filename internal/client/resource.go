package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Status is the load state of a Resource
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Resource is a single cached response. A 404 is kept apart from a pending load.
type Resource[T any] struct {
	cache   *Cache
	fetcher Fetcher
	key     Key

	mu     sync.Mutex
	status Status
	err    error
}

func NewResource[T any](cache *Cache, fetcher Fetcher, key Key) *Resource[T] {
	return &Resource[T]{cache: cache, fetcher: fetcher, key: key}
}

func (r *Resource[T]) Key() Key {
	return r.key
}

// Status reports the outcome of the last load, or ready if the cache already holds data
func (r *Resource[T]) Status() (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusLoading {
		if _, ok := r.cache.Get(r.key); ok {
			return StatusReady, nil
		}
	}
	return r.status, r.err
}

// Peek returns the cached value without fetching
func (r *Resource[T]) Peek() (T, bool, error) {
	return Load[T](r.cache, r.key)
}

// Load serves from the cache and fetches only on a miss
func (r *Resource[T]) Load(ctx context.Context) (T, error) {
	v, ok, err := r.Peek()
	if err != nil {
		return v, err
	}
	if ok {
		r.setStatus(StatusReady, nil)
		return v, nil
	}
	return r.Revalidate(ctx)
}

// Revalidate fetches unconditionally and replaces the cached value
func (r *Resource[T]) Revalidate(ctx context.Context) (T, error) {
	var v T

	data, err := r.fetcher.Fetch(ctx, r.key)
	if err != nil {
		if IsNotFound(err) {
			r.setStatus(StatusNotFound, err)
		} else {
			r.setStatus(StatusFailed, err)
		}
		return v, err
	}

	if err := json.Unmarshal(data, &v); err != nil {
		err = fmt.Errorf("failed to decode %s: %w", r.key, err)
		r.setStatus(StatusFailed, err)
		return v, err
	}

	r.cache.Set(r.key, data)
	r.setStatus(StatusReady, nil)
	return v, nil
}

func (r *Resource[T]) setStatus(s Status, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = s
	r.err = err
}
