package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/market/internal/product/delivery/http"
	"github.com/tair/market/internal/product/domain"
	"github.com/tair/market/internal/product/repository"
	"github.com/tair/market/internal/product/usecase/command"
	"github.com/tair/market/internal/product/usecase/query"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewGormProductRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewToggleFavHandler,
	command.NewPurchaseProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListProductsHandler,
	query.NewGetProductHandler,
	query.NewListRecordsHandler,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewProductHandler,
)
