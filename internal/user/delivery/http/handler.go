package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/user/domain"
	"github.com/tair/market/internal/user/usecase/command"
	"github.com/tair/market/internal/user/usecase/query"
	"github.com/tair/market/pkg/auth"
	"github.com/tair/market/pkg/logger"
	"github.com/tair/market/pkg/middleware"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	getUserHandler  *query.GetUserHandler

	tokens  *auth.TokenManager
	authn   *middleware.Authenticator
	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	getUserHandler *query.GetUserHandler,
	tokens *auth.TokenManager,
	authn *middleware.Authenticator,
	metrics *middleware.Metrics,
	limiter *middleware.RateLimiter,
) *UserHandler {
	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		getUserHandler:  getUserHandler,
		tokens:          tokens,
		authn:           authn,
		metrics:         metrics,
		limiter:         limiter,
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users", h.metrics.Wrap("/api/users", h.limiter.Limit(h.Register))).Methods("POST")
	router.HandleFunc("/api/users/login", h.metrics.Wrap("/api/users/login", h.limiter.Limit(h.Login))).Methods("POST")
	router.HandleFunc("/api/users/logout", h.metrics.Wrap("/api/users/logout", h.Logout)).Methods("POST")
	router.HandleFunc("/api/users/me", h.metrics.Wrap("/api/users/me", h.authn.Require(h.GetProfile))).Methods("GET")
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to register user")
		return
	}

	logger.Info(r.Context()).Uint("user_id", user.ID).Msg("User registered")
	api.WriteJSON(w, http.StatusCreated, api.UserResponse{OK: true, User: user})
}

// Login handles POST /api/users/login. The token is returned in the body and
// also set as a cookie so server-rendered pages see the session.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	api.WriteJSON(w, http.StatusOK, api.LoginResponse{OK: true, Token: resp.Token, User: resp.User})
}

// Logout handles POST /api/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	api.WriteJSON(w, http.StatusOK, api.OKResponse{OK: true})
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: userID})
	if err != nil {
		h.respondError(w, r, err, "Failed to load user")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.UserResponse{OK: true, User: user})
}

func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		api.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		api.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		api.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
