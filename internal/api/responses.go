// Package api holds the JSON envelopes shared by the HTTP handlers, the
// server-rendered pages and the client. Every body carries a top-level "ok".
package api

import (
	"encoding/json"
	"net/http"

	productdomain "github.com/tair/market/internal/product/domain"
	streamdomain "github.com/tair/market/internal/stream/domain"
	userdomain "github.com/tair/market/internal/user/domain"
)

// ErrorResponse is returned by every failing handler
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// OKResponse acknowledges a mutation without payload
type OKResponse struct {
	OK bool `json:"ok"`
}

// FeedResponse is one page of GET /api/products
type FeedResponse struct {
	OK       bool                    `json:"ok"`
	Products []productdomain.Product `json:"products"`
	Pages    int                     `json:"pages"`
}

// ProductResponse wraps a single product
type ProductResponse struct {
	OK      bool                   `json:"ok"`
	Product *productdomain.Product `json:"product"`
}

// ProductDetailResponse is the body of GET /api/products/{id}
type ProductDetailResponse struct {
	OK              bool                    `json:"ok"`
	Product         *productdomain.Product  `json:"product"`
	RelatedProducts []productdomain.Product `json:"relatedProducts"`
	IsLiked         bool                    `json:"isLiked"`
}

// RecordsResponse lists purchases, sales or favs of the current user
type RecordsResponse struct {
	OK      bool                   `json:"ok"`
	Kind    string                 `json:"kind"`
	Records []productdomain.Record `json:"records"`
}

// StreamResponse wraps a single stream
type StreamResponse struct {
	OK     bool                 `json:"ok"`
	Stream *streamdomain.Stream `json:"stream"`
}

// StreamsResponse is one page of GET /api/streams
type StreamsResponse struct {
	OK      bool                  `json:"ok"`
	Streams []streamdomain.Stream `json:"streams"`
	Pages   int                   `json:"pages"`
}

// UserResponse wraps a single user
type UserResponse struct {
	OK   bool             `json:"ok"`
	User *userdomain.User `json:"user"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	OK    bool             `json:"ok"`
	Token string           `json:"token"`
	User  *userdomain.User `json:"user"`
}

// Encode is the single serializer for API bodies and page seeds. Both sides
// must go through it so a seed is byte-identical to the API response.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := Encode(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"ok":false,"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// WriteError writes {ok:false,error}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{OK: false, Error: message})
}
