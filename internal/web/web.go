// Package web renders the HTML pages. Each page runs the same query handler as
// the matching API route and embeds the encoded response as a cache seed, so
// the client starts with data identical to what the API would return.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/feed"
	productdomain "github.com/tair/market/internal/product/domain"
	productquery "github.com/tair/market/internal/product/usecase/query"
	streamdomain "github.com/tair/market/internal/stream/domain"
	streamcommand "github.com/tair/market/internal/stream/usecase/command"
	streamquery "github.com/tair/market/internal/stream/usecase/query"
	"github.com/tair/market/pkg/logger"
	"github.com/tair/market/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "product", "bought", "stream_create", "stream"}

// Handler serves the server-rendered pages
type Handler struct {
	listProducts *productquery.ListProductsHandler
	getProduct   *productquery.GetProductHandler
	listRecords  *productquery.ListRecordsHandler
	createStream *streamcommand.CreateStreamHandler
	getStream    *streamquery.GetStreamHandler

	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
	pages   map[string]*template.Template
}

// NewHandler parses the embedded templates
func NewHandler(
	listProducts *productquery.ListProductsHandler,
	getProduct *productquery.GetProductHandler,
	listRecords *productquery.ListRecordsHandler,
	createStream *streamcommand.CreateStreamHandler,
	getStream *streamquery.GetStreamHandler,
	metrics *middleware.Metrics,
	limiter *middleware.RateLimiter,
) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		listProducts: listProducts,
		getProduct:   getProduct,
		listRecords:  listRecords,
		createStream: createStream,
		getStream:    getStream,
		metrics:      metrics,
		limiter:      limiter,
		pages:        pages,
	}, nil
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.metrics.Wrap("/", h.Home)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", h.metrics.Wrap("/products/{id}", h.Product)).Methods("GET")
	router.HandleFunc("/profile/bought", h.metrics.Wrap("/profile/bought", h.Bought)).Methods("GET")
	router.HandleFunc("/streams/create", h.metrics.Wrap("/streams/create", h.StreamForm)).Methods("GET")
	router.HandleFunc("/streams/create", h.metrics.Wrap("/streams/create", h.limiter.Limit(h.SubmitStream))).Methods("POST")
	router.HandleFunc("/streams/{id:[0-9]+}", h.metrics.Wrap("/streams/{id}", h.Stream)).Methods("GET")
}

// Seed maps API request URLs to their encoded responses
type Seed map[string]json.RawMessage

// Add encodes v with the API encoder under url
func (s Seed) Add(url string, v any) error {
	body, err := api.Encode(v)
	if err != nil {
		return err
	}
	s[url] = body
	return nil
}

// JS renders the seed for the page's JSON script element
func (s Seed) JS() (template.JS, error) {
	if len(s) == 0 {
		return "", nil
	}
	body, err := api.Encode(s)
	if err != nil {
		return "", err
	}
	return template.JS(body), nil
}

type streamForm struct {
	Name        string
	Price       string
	Description string
}

type pageData struct {
	Title    string
	Seed     template.JS
	NotFound bool
	Message  string

	Feed    *api.FeedResponse
	Detail  *api.ProductDetailResponse
	Records *api.RecordsResponse
	Stream  *streamdomain.Stream
	Form    streamForm
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listProducts.Handle(r.Context(), productquery.ListProductsQuery{Page: 1})
	if err != nil {
		h.serverError(w, r, err, "Failed to load feed")
		return
	}

	seed := Seed{}
	if err := seed.Add(feed.SeedKey().String(), resp); err != nil {
		h.serverError(w, r, err, "Failed to encode seed")
		return
	}

	h.render(w, r, http.StatusOK, "home", pageData{Title: "Home", Feed: resp}, seed)
}

// Product handles GET /products/{id}
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	resp, err := h.getProduct.Handle(r.Context(), productquery.GetProductQuery{ID: uint(id), ViewerID: viewerID})
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) || errors.Is(err, productdomain.ErrInvalidInput) {
			h.render(w, r, http.StatusNotFound, "product", pageData{Title: "Not found", NotFound: true}, nil)
			return
		}
		h.serverError(w, r, err, "Failed to load product")
		return
	}

	seed := Seed{}
	if err := seed.Add(fmt.Sprintf("/api/products/%d", resp.Product.ID), resp); err != nil {
		h.serverError(w, r, err, "Failed to encode seed")
		return
	}

	h.render(w, r, http.StatusOK, "product", pageData{Title: resp.Product.Name, Detail: resp}, seed)
}

// Bought handles GET /profile/bought
func (h *Handler) Bought(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.render(w, r, http.StatusUnauthorized, "bought", pageData{
			Title:   "Purchases",
			Message: "Log in to see your purchases.",
		}, nil)
		return
	}

	resp, err := h.listRecords.Handle(r.Context(), productquery.ListRecordsQuery{
		UserID: userID,
		Kind:   productdomain.RecordPurchases,
	})
	if err != nil {
		h.serverError(w, r, err, "Failed to load purchases")
		return
	}

	seed := Seed{}
	if err := seed.Add("/api/users/me/"+string(productdomain.RecordPurchases), resp); err != nil {
		h.serverError(w, r, err, "Failed to encode seed")
		return
	}

	h.render(w, r, http.StatusOK, "bought", pageData{Title: "Purchases", Records: resp}, seed)
}

// StreamForm handles GET /streams/create
func (h *Handler) StreamForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Go live"}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		data.Message = "Log in to start a stream."
	}
	h.render(w, r, http.StatusOK, "stream_create", data, nil)
}

// SubmitStream handles POST /streams/create and redirects to the new stream
func (h *Handler) SubmitStream(w http.ResponseWriter, r *http.Request) {
	form := streamForm{
		Name:        r.PostFormValue("name"),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Description: r.PostFormValue("description"),
	}
	data := pageData{Title: "Go live", Form: form}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		data.Message = "Log in to start a stream."
		h.render(w, r, http.StatusUnauthorized, "stream_create", data, nil)
		return
	}

	var price float64
	if form.Price != "" {
		p, err := strconv.ParseFloat(form.Price, 64)
		if err != nil {
			data.Message = "Price must be a number."
			h.render(w, r, http.StatusBadRequest, "stream_create", data, nil)
			return
		}
		price = p
	}

	stream, err := h.createStream.Handle(r.Context(), streamcommand.CreateStreamCommand{
		UserID:      userID,
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
	})
	if err != nil {
		if errors.Is(err, streamdomain.ErrInvalidInput) {
			data.Message = err.Error()
			h.render(w, r, http.StatusBadRequest, "stream_create", data, nil)
			return
		}
		h.serverError(w, r, err, "Failed to create stream")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/streams/%d", stream.ID), http.StatusSeeOther)
}

// Stream handles GET /streams/{id}
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)

	stream, err := h.getStream.Handle(r.Context(), streamquery.GetStreamQuery{ID: uint(id)})
	if err != nil {
		if errors.Is(err, streamdomain.ErrStreamNotFound) || errors.Is(err, streamdomain.ErrInvalidInput) {
			h.render(w, r, http.StatusNotFound, "stream", pageData{Title: "Not found", NotFound: true}, nil)
			return
		}
		h.serverError(w, r, err, "Failed to load stream")
		return
	}

	seed := Seed{}
	if err := seed.Add(fmt.Sprintf("/api/streams/%d", stream.ID), api.StreamResponse{OK: true, Stream: stream}); err != nil {
		h.serverError(w, r, err, "Failed to encode seed")
		return
	}

	h.render(w, r, http.StatusOK, "stream", pageData{Title: stream.Name, Stream: stream}, seed)
}

// render buffers the page so a template error never leaves a half-written body
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData, seed Seed) {
	js, err := seed.JS()
	if err != nil {
		h.serverError(w, r, err, "Failed to encode seed")
		return
	}
	data.Seed = js

	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.serverError(w, r, err, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg(message)
	http.Error(w, message, http.StatusInternalServerError)
}
