// Package market is a typed client of the market API built on the client data layer.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/client"
	"github.com/tair/market/internal/feed"
	productdomain "github.com/tair/market/internal/product/domain"
	streamdomain "github.com/tair/market/internal/stream/domain"
)

// Client wraps the API with a shared response cache
type Client struct {
	cache *client.Cache
	http  *client.HTTPClient
	feed  *client.Infinite[api.FeedResponse]

	mu        sync.Mutex
	mutations map[client.Key]*client.Mutation
}

// New creates a client for baseURL. The cache is injected so a page seed can
// be hydrated into it before the first read.
func New(baseURL string, cache *client.Cache, hc *http.Client) *Client {
	httpClient := client.NewHTTPClient(baseURL, hc)
	return &Client{
		cache:     cache,
		http:      httpClient,
		feed:      client.NewInfinite[api.FeedResponse](cache, httpClient, feed.NextKey),
		mutations: make(map[client.Key]*client.Mutation),
	}
}

func (c *Client) Cache() *client.Cache {
	return c.cache
}

// Feed is the infinite product feed; drive it with SetSize or a ScrollWatcher
func (c *Client) Feed() *client.Infinite[api.FeedResponse] {
	return c.feed
}

// FeedItems flattens the loaded feed pages
func (c *Client) FeedItems() ([]productdomain.Product, error) {
	pages, err := c.feed.Pages()
	if err != nil {
		return nil, err
	}
	return feed.Flatten(pages), nil
}

// ProductKey is the cache key of a product detail
func ProductKey(id uint) client.Key {
	return client.NewKey("/api/products/"+strconv.FormatUint(uint64(id), 10), nil)
}

// Product is the detail resource of one product
func (c *Client) Product(id uint) *client.Resource[api.ProductDetailResponse] {
	return client.NewResource[api.ProductDetailResponse](c.cache, c.http, ProductKey(id))
}

// Records is the resource behind /api/users/me/{kind}
func (c *Client) Records(kind productdomain.RecordKind) *client.Resource[api.RecordsResponse] {
	return client.NewResource[api.RecordsResponse](c.cache, c.http, client.NewKey("/api/users/me/"+string(kind), nil))
}

// Stream is the resource of one stream
func (c *Client) Stream(id uint) *client.Resource[api.StreamResponse] {
	key := client.NewKey("/api/streams/"+strconv.FormatUint(uint64(id), 10), nil)
	return client.NewResource[api.StreamResponse](c.cache, c.http, key)
}

// FavMutation is the mutation guarding a product's like toggle
func (c *Client) FavMutation(id uint) *client.Mutation {
	key := ProductKey(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.mutations[key]
	if !ok {
		m = client.NewMutation(c.cache, key)
		c.mutations[key] = m
	}
	return m
}

// ToggleFav flips isLiked on the cached detail immediately and posts the
// toggle. The feed cache is left as it is. A toggle while one is in flight
// returns client.ErrMutationPending.
func (c *Client) ToggleFav(ctx context.Context, id uint) (<-chan error, error) {
	flip := client.Edit(func(d *api.ProductDetailResponse) {
		d.IsLiked = !d.IsLiked
	})
	send := func(ctx context.Context) error {
		_, err := c.http.Send(ctx, http.MethodPost, fmt.Sprintf("/api/products/%d/fav", id), nil)
		return err
	}
	return c.FavMutation(id).Run(ctx, flip, send)
}

// Login stores the session token for later requests
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	data, err := c.http.Send(ctx, http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp api.LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	c.http.SetToken(resp.Token)
	return &resp, nil
}

// CreateStream posts a new stream and caches its detail
func (c *Client) CreateStream(ctx context.Context, name string, price float64, description string) (*streamdomain.Stream, error) {
	data, err := c.http.Send(ctx, http.MethodPost, "/api/streams", map[string]any{
		"name":        name,
		"price":       price,
		"description": description,
	})
	if err != nil {
		return nil, err
	}

	var resp api.StreamResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stream response: %w", err)
	}
	if resp.Stream != nil {
		c.cache.Set(c.Stream(resp.Stream.ID).Key(), data)
	}
	return resp.Stream, nil
}

// Purchase buys a product and drops the cached purchase list
func (c *Client) Purchase(ctx context.Context, id uint) error {
	if _, err := c.http.Send(ctx, http.MethodPost, fmt.Sprintf("/api/products/%d/purchase", id), nil); err != nil {
		return err
	}
	c.cache.Delete(c.Records(productdomain.RecordPurchases).Key())
	return nil
}
