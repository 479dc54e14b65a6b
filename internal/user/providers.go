package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/market/internal/user/delivery/http"
	"github.com/tair/market/internal/user/domain"
	"github.com/tair/market/internal/user/repository"
	"github.com/tair/market/internal/user/usecase/command"
	"github.com/tair/market/internal/user/usecase/query"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewUserHandler,
)
