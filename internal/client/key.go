package client

import (
	"fmt"
	"net/url"
)

// Key identifies a cached response by route and canonical query string.
// Two keys built from the same parameters in any order are equal.
type Key struct {
	Route string
	Query string
}

// NewKey builds a key; params are encoded sorted by name
func NewKey(route string, params url.Values) Key {
	return Key{Route: route, Query: params.Encode()}
}

// ParseKey turns a request URL such as "/api/products?page=1" into a Key
func ParseKey(raw string) (Key, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Key{}, fmt.Errorf("invalid cache key %q: %w", raw, err)
	}
	if u.Path == "" {
		return Key{}, fmt.Errorf("invalid cache key %q: empty route", raw)
	}
	return NewKey(u.Path, u.Query()), nil
}

// String renders the key as the request URL it caches
func (k Key) String() string {
	if k.Query == "" {
		return k.Route
	}
	return k.Route + "?" + k.Query
}

// Param returns the first value of a query parameter
func (k Key) Param(name string) string {
	values, err := url.ParseQuery(k.Query)
	if err != nil {
		return ""
	}
	return values.Get(name)
}

func (k Key) IsZero() bool {
	return k.Route == ""
}
