package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/market/internal/feed"
	"github.com/tair/market/internal/stream/domain"
	"github.com/tair/market/internal/stream/repository"
	"github.com/tair/market/internal/testdb"
)

func TestListStreams(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormStreamRepository(testdb.Open(t, &domain.Stream{}))
	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Stream{
			Name:        fmt.Sprintf("stream %d", i),
			Description: "live",
			UserID:      1,
		}))
	}
	h := NewListStreamsHandler(repo)

	tests := []struct {
		name string
		page int
		want int
	}{
		{"first page", 1, 10},
		{"last page", 2, 2},
		{"past the end", 3, 0},
		{"huge page", feed.ParsePage("922337203685477582"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(ctx, ListStreamsQuery{Page: tt.page})
			require.NoError(t, err)
			assert.Equal(t, 2, resp.Pages)
			assert.Len(t, resp.Streams, tt.want)
		})
	}
}
