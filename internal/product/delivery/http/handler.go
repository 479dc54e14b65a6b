package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/feed"
	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/internal/product/usecase/command"
	"github.com/tair/market/internal/product/usecase/query"
	"github.com/tair/market/pkg/logger"
	"github.com/tair/market/pkg/middleware"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler   *command.CreateProductHandler
	toggleFav       *command.ToggleFavHandler
	purchaseHandler *command.PurchaseProductHandler

	// Query handlers
	listHandler    *query.ListProductsHandler
	getHandler     *query.GetProductHandler
	recordsHandler *query.ListRecordsHandler

	repo    domain.ProductRepository
	authn   *middleware.Authenticator
	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
}

// NewProductHandler creates a new product handler; used by Wire
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	toggleFav *command.ToggleFavHandler,
	purchaseHandler *command.PurchaseProductHandler,
	listHandler *query.ListProductsHandler,
	getHandler *query.GetProductHandler,
	recordsHandler *query.ListRecordsHandler,
	repo domain.ProductRepository,
	authn *middleware.Authenticator,
	metrics *middleware.Metrics,
	limiter *middleware.RateLimiter,
) *ProductHandler {
	return &ProductHandler{
		createHandler:   createHandler,
		toggleFav:       toggleFav,
		purchaseHandler: purchaseHandler,
		listHandler:     listHandler,
		getHandler:      getHandler,
		recordsHandler:  recordsHandler,
		repo:            repo,
		authn:           authn,
		metrics:         metrics,
		limiter:         limiter,
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public routes (viewer identity is optional)
	router.HandleFunc("/api/products", h.metrics.Wrap("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metrics.Wrap("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Authenticated mutations
	router.HandleFunc("/api/products", h.metrics.Wrap("/api/products", h.protect(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}/fav", h.metrics.Wrap("/api/products/{id}/fav", h.protect(h.ToggleFav))).Methods("POST")
	router.HandleFunc("/api/products/{id}/purchase", h.metrics.Wrap("/api/products/{id}/purchase", h.protect(h.Purchase))).Methods("POST")

	router.HandleFunc("/api/users/me/{kind}", h.metrics.Wrap("/api/users/me/{kind}", h.authn.Require(h.ListRecords))).Methods("GET")
}

// protect requires a session and then rate-limits per user
func (h *ProductHandler) protect(next http.HandlerFunc) http.HandlerFunc {
	return h.authn.Require(h.limiter.Limit(next))
}

// ListProducts handles GET /api/products?page=N
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := feed.ParsePage(r.URL.Query().Get("page"))

	resp, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Page: page})
	if err != nil {
		h.respondError(w, r, err, "Failed to list products")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	viewerID, _ := middleware.UserIDFromContext(r.Context())
	resp, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id, ViewerID: viewerID})
	if err != nil {
		h.respondError(w, r, err, "Failed to load product")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		UserID:      userID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to create product")
		return
	}

	h.updateProductsMetric(r)

	api.WriteJSON(w, http.StatusCreated, api.ProductResponse{OK: true, Product: product})
}

// ToggleFav handles POST /api/products/{id}/fav
func (h *ProductHandler) ToggleFav(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	if _, err := h.toggleFav.Handle(r.Context(), command.ToggleFavCommand{ProductID: id, UserID: userID}); err != nil {
		h.respondError(w, r, err, "Failed to toggle favorite")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OKResponse{OK: true})
}

// Purchase handles POST /api/products/{id}/purchase
func (h *ProductHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	if _, err := h.purchaseHandler.Handle(r.Context(), command.PurchaseProductCommand{ProductID: id, UserID: userID}); err != nil {
		h.respondError(w, r, err, "Failed to purchase product")
		return
	}

	api.WriteJSON(w, http.StatusCreated, api.OKResponse{OK: true})
}

// ListRecords handles GET /api/users/me/{purchases|sales|favs}
func (h *ProductHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseRecordKind(mux.Vars(r)["kind"])
	if err != nil {
		api.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	resp, err := h.recordsHandler.Handle(r.Context(), query.ListRecordsQuery{UserID: userID, Kind: kind})
	if err != nil {
		h.respondError(w, r, err, "Failed to list records")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context())
	if err == nil {
		h.metrics.SetTotalProducts(count)
	}
}

func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		api.WriteError(w, http.StatusNotFound, "Product not found")
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		api.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		api.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}
