// Package client is the data layer used by consumers of the market API: a
// response cache keyed by request, single and paginated fetchers, optimistic
// mutations and a scroll watcher that grows the feed.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Cache holds raw JSON responses by Key. It is safe for concurrent use and is
// passed explicitly to every fetcher that reads or writes it.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]json.RawMessage
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]json.RawMessage)}
}

func (c *Cache) Get(key Key) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *Cache) Set(key Key, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
}

func (c *Cache) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Mutate replaces the entry under key with fn's result while holding the lock.
// fn sees nil for a missing entry; an error leaves the entry untouched.
func (c *Cache) Mutate(key Key, fn func(json.RawMessage) (json.RawMessage, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.entries[key])
	if err != nil {
		return err
	}
	if next == nil {
		delete(c.entries, key)
		return nil
	}
	c.entries[key] = next
	return nil
}

// Hydrate loads a server-rendered seed whose keys are request URLs
func (c *Cache) Hydrate(seed map[string]json.RawMessage) error {
	parsed := make(map[Key]json.RawMessage, len(seed))
	for raw, data := range seed {
		key, err := ParseKey(raw)
		if err != nil {
			return err
		}
		parsed[key] = data
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, data := range parsed {
		c.entries[key] = data
	}
	return nil
}

// Load decodes the cached entry under key
func Load[T any](c *Cache, key Key) (T, bool, error) {
	var v T
	data, ok := c.Get(key)
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, true, nil
}

// Store encodes v under key
func Store[T any](c *Cache, key Key, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	c.Set(key, data)
	return nil
}

// ErrNotLoaded is returned when an edit targets a key with no cached data
var ErrNotLoaded = errors.New("no cached data")

// Edit adapts a typed in-place edit to Cache.Mutate
func Edit[T any](fn func(*T)) func(json.RawMessage) (json.RawMessage, error) {
	return func(data json.RawMessage) (json.RawMessage, error) {
		if data == nil {
			return nil, ErrNotLoaded
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fn(&v)
		return json.Marshal(v)
	}
}
