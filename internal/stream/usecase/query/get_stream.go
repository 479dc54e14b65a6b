package query

import (
	"context"
	"fmt"

	"github.com/tair/market/internal/stream/domain"
)

// GetStreamQuery represents the query to get a stream by ID
type GetStreamQuery struct {
	ID uint
}

// GetStreamHandler handles get stream query
type GetStreamHandler struct {
	repo domain.StreamRepository
}

// NewGetStreamHandler creates a new get stream handler
func NewGetStreamHandler(repo domain.StreamRepository) *GetStreamHandler {
	return &GetStreamHandler{repo: repo}
}

// Handle executes the get stream query
func (h *GetStreamHandler) Handle(ctx context.Context, query GetStreamQuery) (*domain.Stream, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid stream id", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(ctx, query.ID)
}
