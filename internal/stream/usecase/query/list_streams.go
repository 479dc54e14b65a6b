package query

import (
	"context"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/feed"
	"github.com/tair/market/internal/stream/domain"
)

// ListStreamsQuery asks for one one-based page of streams
type ListStreamsQuery struct {
	Page int
}

// ListStreamsHandler handles list streams query
type ListStreamsHandler struct {
	repo domain.StreamRepository
}

// NewListStreamsHandler creates a new list streams handler
func NewListStreamsHandler(repo domain.StreamRepository) *ListStreamsHandler {
	return &ListStreamsHandler{repo: repo}
}

// Handle pages streams with the same size and order rules as the product feed
func (h *ListStreamsHandler) Handle(ctx context.Context, query ListStreamsQuery) (*api.StreamsResponse, error) {
	streams, err := h.repo.FindPage(ctx, feed.Offset(query.Page), feed.PageSize)
	if err != nil {
		return nil, err
	}

	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if streams == nil {
		streams = []domain.Stream{}
	}

	return &api.StreamsResponse{
		OK:      true,
		Streams: streams,
		Pages:   feed.Pages(total),
	}, nil
}
