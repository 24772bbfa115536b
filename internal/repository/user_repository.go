package repository

import (
	"context"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
)

type UserListQuery struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

type UpdateProfileInput struct {
	FullName string
	Phone    string
}

type UserRepository interface {
	Me(ctx context.Context) (model.User, error)
	UpdateMe(ctx context.Context, in UpdateProfileInput) (model.User, error)

	// staff専用
	List(ctx context.Context, q UserListQuery) ([]model.User, error)
}
