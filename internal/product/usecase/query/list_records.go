package query

import (
	"context"
	"fmt"

	"github.com/tair/market/internal/api"
	"github.com/tair/market/internal/product/domain"
)

// ListRecordsQuery lists one profile list of a user
type ListRecordsQuery struct {
	UserID uint
	Kind   domain.RecordKind
}

// ListRecordsHandler serves purchases, sales and favs
type ListRecordsHandler struct {
	repo domain.ProductRepository
}

// NewListRecordsHandler creates a new list records handler
func NewListRecordsHandler(repo domain.ProductRepository) *ListRecordsHandler {
	return &ListRecordsHandler{repo: repo}
}

// Handle executes the list records query
func (h *ListRecordsHandler) Handle(ctx context.Context, query ListRecordsQuery) (*api.RecordsResponse, error) {
	if query.UserID == 0 {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidInput)
	}

	records, err := h.repo.ListRecords(ctx, query.Kind, query.UserID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}

	return &api.RecordsResponse{
		OK:      true,
		Kind:    string(query.Kind),
		Records: records,
	}, nil
}
