package user

import (
	"context"

	userUsecases "hotelops/internal/application/user/usecases"
	userDomain "hotelops/internal/domain/user"
	"hotelops/internal/shared/query"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, page query.PageFilter) ([]*userDomain.User, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, q userUsecases.GetUserQuery) (*userDomain.User, error)
}
