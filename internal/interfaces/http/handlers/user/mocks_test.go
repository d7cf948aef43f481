package user

import (
	"context"

	userUsecases "hotelops/internal/application/user/usecases"
	userDomain "hotelops/internal/domain/user"
	"hotelops/internal/shared/query"
)

type mockListUsersUC struct {
	result []*userDomain.User
	err    error
}

func (m *mockListUsersUC) Execute(ctx context.Context, page query.PageFilter) ([]*userDomain.User, error) {
	return m.result, m.err
}

type mockGetUserUC struct {
	result *userDomain.User
	err    error
	query  userUsecases.GetUserQuery
}

func (m *mockGetUserUC) Execute(ctx context.Context, q userUsecases.GetUserQuery) (*userDomain.User, error) {
	m.query = q
	return m.result, m.err
}
