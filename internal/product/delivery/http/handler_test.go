package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/internal/product/repository"
	"github.com/tair/market/internal/product/usecase/command"
	"github.com/tair/market/internal/product/usecase/query"
	"github.com/tair/market/internal/testdb"
	userdomain "github.com/tair/market/internal/user/domain"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/auth"
	"github.com/tair/market/pkg/middleware"
)

type fixture struct {
	router http.Handler
	repo   domain.ProductRepository
	tokens *auth.TokenManager
}

func newFixture(t *testing.T, products int) *fixture {
	db := testdb.Open(t, &userdomain.User{}, &domain.Product{}, &domain.Fav{}, &domain.Purchase{})
	require.NoError(t, db.Create(&[]userdomain.User{
		{Name: "seller", Email: "seller@example.com"},
		{Name: "buyer", Email: "buyer@example.com"},
	}).Error)

	repo := repository.NewGormProductRepository(db)
	for i := 1; i <= products; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Product{
			Name: fmt.Sprintf("gadget %d", i), Price: float64(i), UserID: 1,
		}))
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authn := middleware.NewAuthenticator(tokens)
	publisher := kafka.NopPublisher{}

	h := NewProductHandler(
		command.NewCreateProductHandler(repo),
		command.NewToggleFavHandler(repo, publisher),
		command.NewPurchaseProductHandler(repo, publisher),
		query.NewListProductsHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewListRecordsHandler(repo),
		repo,
		authn,
		middleware.NewMetrics(prometheus.NewRegistry()),
		middleware.NewRateLimiter(nil, 0, 0),
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &fixture{router: authn.Optional(router), repo: repo, tokens: tokens}
}

func (f *fixture) do(t *testing.T, method, target, body string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != 0 {
		token, err := f.tokens.Generate(userID, "")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListProductsPages(t *testing.T) {
	f := newFixture(t, 25)

	for page, want := range map[string]int{"1": 10, "2": 10, "3": 5, "4": 0} {
		rec := f.do(t, http.MethodGet, "/api/products?page="+page, "", 0)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.FeedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, 3, resp.Pages)
		assert.Len(t, resp.Products, want, "page %s", page)
	}

	rec := f.do(t, http.MethodGet, "/api/products?page=4", "", 0)
	assert.JSONEq(t, `{"ok":true,"products":[],"pages":3}`, rec.Body.String())
}

func TestListProductsCarriesFavCount(t *testing.T) {
	f := newFixture(t, 1)
	_, err := f.repo.ToggleFav(context.Background(), 1, 2)
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/products?page=1", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw struct {
		Products []map[string]json.RawMessage `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw.Products, 1)
	assert.JSONEq(t, `{"favs":1}`, string(raw.Products[0]["_count"]))
}

func TestGetProductDetail(t *testing.T) {
	f := newFixture(t, 3)

	rec := f.do(t, http.MethodGet, "/api/products/1", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ProductDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "gadget 1", resp.Product.Name)
	require.NotNil(t, resp.Product.User)
	assert.Equal(t, "seller", resp.Product.User.Name)
	assert.Len(t, resp.RelatedProducts, 2)
	assert.False(t, resp.IsLiked)

	rec = f.do(t, http.MethodPost, "/api/products/1/fav", "", 2)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/products/1", "", 2)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsLiked)
	assert.EqualValues(t, 1, resp.Product.FavCount)

	rec = f.do(t, http.MethodGet, "/api/products/1", "", 0)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsLiked)
}

func TestGetProductErrors(t *testing.T) {
	f := newFixture(t, 1)

	rec := f.do(t, http.MethodGet, "/api/products/77", "", 0)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Product not found"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/products/abc", "", 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	f := newFixture(t, 1)

	for _, target := range []string{"/api/products", "/api/products/1/fav", "/api/products/1/purchase"} {
		rec := f.do(t, http.MethodPost, target, `{}`, 0)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	rec := f.do(t, http.MethodGet, "/api/users/me/purchases", "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToggleFavMissingProduct(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.do(t, http.MethodPost, "/api/products/5/fav", "", 2)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.do(t, http.MethodPost, "/api/products", `{"name":"Lamp","price":12.5,"description":"warm","image":"lamp.png"}`, 1)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, uint(1), resp.Product.UserID)
	assert.Equal(t, 12.5, resp.Product.Price)

	rec = f.do(t, http.MethodPost, "/api/products", `{"name":"","price":1}`, 1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/products", `{`, 1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseAndRecords(t *testing.T) {
	f := newFixture(t, 2)

	rec := f.do(t, http.MethodPost, "/api/products/2/purchase", "", 2)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/me/purchases", "", 2)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RecordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "purchases", resp.Kind)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "gadget 2", resp.Records[0].Product.Name)

	rec = f.do(t, http.MethodGet, "/api/users/me/sales", "", 1)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 1)

	rec = f.do(t, http.MethodGet, "/api/users/me/wishlist", "", 2)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
