package market

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/market/internal/app"
	"github.com/tair/market/internal/client"
	productdomain "github.com/tair/market/internal/product/domain"
	"github.com/tair/market/internal/testdb"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/config"
	"github.com/tair/market/pkg/health"
)

const seedMarker = `<script id="__SEED__" type="application/json">`

type testServer struct {
	*httptest.Server
	feedFetches atomic.Int64
}

func newTestServer(t *testing.T, products int) *testServer {
	t.Helper()

	db := testdb.Open(t, app.Models()...)
	_, err := app.SeedCatalog(context.Background(), db, app.SeedOptions{
		SellerEmail:    "seller@example.com",
		SellerPassword: "secret1",
		Products:       products,
	})
	require.NoError(t, err)

	cfg := config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	reg := prometheus.NewRegistry()
	handlers, err := app.InitializeHandlers(db, cfg, nil, kafka.NopPublisher{}, reg)
	require.NoError(t, err)
	router := app.NewRouter(handlers, health.NewChecker(time.Second), reg, app.DefaultMiddlewareConfig())

	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/products" {
			ts.feedFetches.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// homeSeed fetches the home page and extracts its embedded cache seed
func homeSeed(t *testing.T, baseURL string) map[string]json.RawMessage {
	t.Helper()

	resp, err := http.Get(baseURL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	html := string(body)
	start := strings.Index(html, seedMarker)
	require.GreaterOrEqual(t, start, 0, "page has no seed")
	html = html[start+len(seedMarker):]
	end := strings.Index(html, "</script>")
	require.GreaterOrEqual(t, end, 0)

	var seed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(html[:end]), &seed))
	return seed
}

func TestHydratedFeedNeedsNoFirstFetch(t *testing.T) {
	ts := newTestServer(t, 25)
	ctx := context.Background()

	cache := client.NewCache()
	require.NoError(t, cache.Hydrate(homeSeed(t, ts.URL)))

	c := New(ts.URL, cache, ts.Client())
	require.NoError(t, c.Feed().SetSize(ctx, 1))
	assert.EqualValues(t, 0, ts.feedFetches.Load())

	items, err := c.FeedItems()
	require.NoError(t, err)
	assert.Len(t, items, 10)
}

func TestFeedWalkTerminates(t *testing.T) {
	ts := newTestServer(t, 25)
	ctx := context.Background()

	c := New(ts.URL, client.NewCache(), ts.Client())
	for size := 1; size <= 6; size++ {
		require.NoError(t, c.Feed().SetSize(ctx, size))
	}

	assert.True(t, c.Feed().Exhausted())
	items, err := c.FeedItems()
	require.NoError(t, err)
	require.Len(t, items, 25)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, uint(25), items[24].ID)

	// pages 1-4, each once; page 4 is the empty terminator
	assert.EqualValues(t, 4, ts.feedFetches.Load())
}

func TestToggleFavIsOptimistic(t *testing.T) {
	ts := newTestServer(t, 3)
	ctx := context.Background()

	resp, err := http.Post(ts.URL+"/api/users", "application/json",
		strings.NewReader(`{"name":"Shopper","email":"shopper@example.com","password":"secret1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	c := New(ts.URL, client.NewCache(), ts.Client())
	_, err = c.Login(ctx, "shopper@example.com", "secret1")
	require.NoError(t, err)

	detail := c.Product(1)
	before, err := detail.Load(ctx)
	require.NoError(t, err)
	require.False(t, before.IsLiked)

	done, err := c.ToggleFav(ctx, 1)
	require.NoError(t, err)

	cached, ok, err := detail.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, cached.IsLiked, "cache flips before the request completes")

	require.NoError(t, <-done)
	assert.Equal(t, client.MutationConfirmed, c.FavMutation(1).State())

	fresh, err := detail.Revalidate(ctx)
	require.NoError(t, err)
	assert.True(t, fresh.IsLiked)
	assert.EqualValues(t, 1, fresh.Product.FavCount)
}

func TestToggleFavRollsBackWhenAnonymous(t *testing.T) {
	ts := newTestServer(t, 1)
	ctx := context.Background()

	c := New(ts.URL, client.NewCache(), ts.Client())
	detail := c.Product(1)
	_, err := detail.Load(ctx)
	require.NoError(t, err)

	done, err := c.ToggleFav(ctx, 1)
	require.NoError(t, err)

	var statusErr *client.StatusError
	require.ErrorAs(t, <-done, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)

	cached, _, err := detail.Peek()
	require.NoError(t, err)
	assert.False(t, cached.IsLiked)
	assert.Equal(t, client.MutationRejected, c.FavMutation(1).State())
}

func TestMissingProductIsNotFound(t *testing.T) {
	ts := newTestServer(t, 1)

	c := New(ts.URL, client.NewCache(), ts.Client())
	detail := c.Product(99)
	_, err := detail.Load(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	status, _ := detail.Status()
	assert.Equal(t, client.StatusNotFound, status)
}

func TestRecordsAfterPurchase(t *testing.T) {
	ts := newTestServer(t, 2)
	ctx := context.Background()

	resp, err := http.Post(ts.URL+"/api/users", "application/json",
		strings.NewReader(`{"name":"Buyer","email":"buyer@example.com","password":"secret1"}`))
	require.NoError(t, err)
	resp.Body.Close()

	c := New(ts.URL, client.NewCache(), ts.Client())
	_, err = c.Login(ctx, "buyer@example.com", "secret1")
	require.NoError(t, err)

	purchases := c.Records(productdomain.RecordPurchases)
	empty, err := purchases.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)

	require.NoError(t, c.Purchase(ctx, 2))

	records, err := purchases.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records.Records, 1)
	assert.Equal(t, uint(2), records.Records[0].Product.ID)
}
