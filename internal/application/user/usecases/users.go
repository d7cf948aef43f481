package usecases

import (
	"context"
	"fmt"

	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page query.PageFilter) ([]*user.User, error) {
	users, err := uc.userRepo.List(ctx, page)
	if err != nil {
		uc.logger.Errorw("failed to list users", "skip", page.Skip, "limit", page.Limit, "error", err)
		return nil, err
	}
	return users, nil
}

// GetUserQuery looks a user up by id, or by email when ID is zero.
type GetUserQuery struct {
	ID    uint
	Email string
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, q GetUserQuery) (*user.User, error) {
	var (
		u   *user.User
		err error
	)
	switch {
	case q.ID != 0:
		u, err = uc.userRepo.GetByID(ctx, q.ID)
	case q.Email != "":
		email, normErr := user.NormalizeEmail(q.Email)
		if normErr != nil {
			return nil, errors.NewValidationError(normErr.Error())
		}
		u, err = uc.userRepo.GetByEmail(ctx, email)
	default:
		return nil, errors.NewValidationError("user id or email is required")
	}
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", q.ID, "error", err)
		return nil, err
	}
	if u == nil {
		if q.ID != 0 {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewNotFoundError(fmt.Sprintf("User with email %s not found", q.Email))
	}
	return u, nil
}
