package stream

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/market/internal/stream/delivery/http"
	"github.com/tair/market/internal/stream/domain"
	"github.com/tair/market/internal/stream/repository"
	"github.com/tair/market/internal/stream/usecase/command"
	"github.com/tair/market/internal/stream/usecase/query"
)

// ProvideStreamRepository provides the traced stream repository
func ProvideStreamRepository(db *gorm.DB) domain.StreamRepository {
	return repository.NewTracingStreamRepository(repository.NewGormStreamRepository(db))
}

var ProviderSet = wire.NewSet(
	ProvideStreamRepository,
	command.NewCreateStreamHandler,
	query.NewGetStreamHandler,
	query.NewListStreamsHandler,
	http.NewStreamHandler,
)
