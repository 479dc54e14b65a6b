package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/feed"
	"github.com/tair/market/internal/stream/domain"
	"github.com/tair/market/internal/stream/usecase/command"
	"github.com/tair/market/internal/stream/usecase/query"
	"github.com/tair/market/pkg/logger"
	"github.com/tair/market/pkg/middleware"
)

// StreamHandler handles HTTP requests for streams
type StreamHandler struct {
	createHandler *command.CreateStreamHandler
	getHandler    *query.GetStreamHandler
	listHandler   *query.ListStreamsHandler

	authn   *middleware.Authenticator
	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(
	createHandler *command.CreateStreamHandler,
	getHandler *query.GetStreamHandler,
	listHandler *query.ListStreamsHandler,
	authn *middleware.Authenticator,
	metrics *middleware.Metrics,
	limiter *middleware.RateLimiter,
) *StreamHandler {
	return &StreamHandler{
		createHandler: createHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		authn:         authn,
		metrics:       metrics,
		limiter:       limiter,
	}
}

// RegisterRoutes registers all stream routes
func (h *StreamHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/streams", h.metrics.Wrap("/api/streams", h.ListStreams)).Methods("GET")
	router.HandleFunc("/api/streams", h.metrics.Wrap("/api/streams", h.authn.Require(h.limiter.Limit(h.CreateStream)))).Methods("POST")
	router.HandleFunc("/api/streams/{id}", h.metrics.Wrap("/api/streams/{id}", h.GetStream)).Methods("GET")
}

// CreateStream handles POST /api/streams
func (h *StreamHandler) CreateStream(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	stream, err := h.createHandler.Handle(r.Context(), command.CreateStreamCommand{
		UserID:      userID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to create stream")
		return
	}

	api.WriteJSON(w, http.StatusCreated, api.StreamResponse{OK: true, Stream: stream})
}

// GetStream handles GET /api/streams/{id}
func (h *StreamHandler) GetStream(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		api.WriteError(w, http.StatusBadRequest, "Invalid stream ID")
		return
	}

	stream, err := h.getHandler.Handle(r.Context(), query.GetStreamQuery{ID: uint(id)})
	if err != nil {
		h.respondError(w, r, err, "Failed to load stream")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.StreamResponse{OK: true, Stream: stream})
}

// ListStreams handles GET /api/streams?page=N
func (h *StreamHandler) ListStreams(w http.ResponseWriter, r *http.Request) {
	page := feed.ParsePage(r.URL.Query().Get("page"))

	resp, err := h.listHandler.Handle(r.Context(), query.ListStreamsQuery{Page: page})
	if err != nil {
		h.respondError(w, r, err, "Failed to list streams")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *StreamHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStreamNotFound):
		api.WriteError(w, http.StatusNotFound, "Stream not found")
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		api.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
