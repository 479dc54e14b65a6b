// Package feed holds the pagination rules shared by the product feed API,
// the server-rendered seed and the infinite-scroll client.
package feed

import (
	"errors"
	"math"
	"net/url"
	"strconv"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/client"
	productdomain "github.com/tair/market/internal/product/domain"
)

// PageSize is fixed; clients cannot ask for larger pages
const PageSize = 10

// Route is the API path of the feed
const Route = "/api/products"

// MaxPage is the last page whose offset fits in an int
const MaxPage = math.MaxInt / PageSize

// NormalizePage clamps page numbers into [1, MaxPage]
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// ParsePage reads a page query value; anything unparsable is page 1 and
// out-of-range numbers are clamped like any other page
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		return NormalizePage(page)
	}
	if err != nil {
		return 1
	}
	return NormalizePage(page)
}

// Offset is the row offset of a one-based page
func Offset(page int) int {
	return (NormalizePage(page) - 1) * PageSize
}

// Pages is ceil(total / PageSize)
func Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + PageSize - 1) / PageSize)
}

// PageKey is the cache key of a one-based feed page
func PageKey(page int) client.Key {
	return client.NewKey(Route, url.Values{"page": {strconv.Itoa(NormalizePage(page))}})
}

// SeedKey is the key the home page embeds its first page under
func SeedKey() client.Key {
	return PageKey(1)
}

// NextKey derives the key of zero-based page pageIndex from the previous page.
// An empty previous page means the feed is exhausted and no key is returned.
func NextKey(pageIndex int, prev *api.FeedResponse) (client.Key, bool) {
	if prev != nil && len(prev.Products) == 0 {
		return client.Key{}, false
	}
	return PageKey(pageIndex + 1), true
}

// Flatten concatenates pages in order
func Flatten(pages []api.FeedResponse) []productdomain.Product {
	var n int
	for _, p := range pages {
		n += len(p.Products)
	}
	items := make([]productdomain.Product, 0, n)
	for _, p := range pages {
		items = append(items, p.Products...)
	}
	return items
}
