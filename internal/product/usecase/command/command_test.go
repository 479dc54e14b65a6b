package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/internal/product/repository"
	"github.com/tair/market/internal/testdb"
	userdomain "github.com/tair/market/internal/user/domain"
	"github.com/tair/market/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func setup(t *testing.T) (*gorm.DB, domain.ProductRepository) {
	db := testdb.Open(t, &userdomain.User{}, &domain.Product{}, &domain.Fav{}, &domain.Purchase{})
	require.NoError(t, db.Create(&[]userdomain.User{
		{Name: "seller", Email: "seller@example.com"},
		{Name: "buyer", Email: "buyer@example.com"},
	}).Error)
	return db, repository.NewGormProductRepository(db)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)
	h := NewCreateProductHandler(repo)

	product, err := h.Handle(ctx, CreateProductCommand{UserID: 1, Name: "  Kettle ", Price: 25, Image: "kettle.png"})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Kettle", product.Name)

	tests := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"no owner", CreateProductCommand{Name: "x", Price: 1}},
		{"no name", CreateProductCommand{UserID: 1, Name: " ", Price: 1}},
		{"negative price", CreateProductCommand{UserID: 1, Name: "x", Price: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(ctx, tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestToggleFavPublishes(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)
	product, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{UserID: 1, Name: "Mug", Price: 5})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	h := NewToggleFavHandler(repo, pub)

	liked, err := h.Handle(ctx, ToggleFavCommand{ProductID: product.ID, UserID: 2})
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = h.Handle(ctx, ToggleFavCommand{ProductID: product.ID, UserID: 2})
	require.NoError(t, err)
	assert.False(t, liked)

	require.Len(t, pub.events, 2)
	assert.Equal(t, kafka.ProductFavoritedEvent{ProductID: product.ID, UserID: 2, Liked: true}, pub.events[0])
	assert.Equal(t, kafka.ProductFavoritedEvent{ProductID: product.ID, UserID: 2, Liked: false}, pub.events[1])

	_, err = h.Handle(ctx, ToggleFavCommand{ProductID: 999, UserID: 2})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestToggleFavSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)
	product, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{UserID: 1, Name: "Mug", Price: 5})
	require.NoError(t, err)

	h := NewToggleFavHandler(repo, &recordingPublisher{err: errors.New("broker down")})

	liked, err := h.Handle(ctx, ToggleFavCommand{ProductID: product.ID, UserID: 2})
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestPurchaseProduct(t *testing.T) {
	ctx := context.Background()
	_, repo := setup(t)
	product, err := NewCreateProductHandler(repo).Handle(ctx, CreateProductCommand{UserID: 1, Name: "Desk", Price: 120})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	h := NewPurchaseProductHandler(repo, pub)

	purchase, err := h.Handle(ctx, PurchaseProductCommand{ProductID: product.ID, UserID: 2})
	require.NoError(t, err)
	assert.NotZero(t, purchase.ID)

	require.Len(t, pub.events, 1)
	event, ok := pub.events[0].(kafka.ProductPurchasedEvent)
	require.True(t, ok)
	assert.Equal(t, purchase.ID, event.PurchaseID)
	assert.Equal(t, 120.0, event.Amount)

	_, err = h.Handle(ctx, PurchaseProductCommand{ProductID: product.ID, UserID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.Handle(ctx, PurchaseProductCommand{ProductID: 999, UserID: 2})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
