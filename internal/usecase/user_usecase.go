package usecase

import (
	"context"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
)

type UserUsecase struct {
	users repo.UserRepository
	store session.Store
}

// DI
func NewUserUsecase(users repo.UserRepository, store session.Store) *UserUsecase {
	return &UserUsecase{users: users, store: store}
}

func (u *UserUsecase) Profile(ctx context.Context) (model.User, error) {
	return u.users.Me(ctx)
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, in repo.UpdateProfileInput) (model.User, error) {
	return u.users.UpdateMe(ctx, in)
}

// List is staff only.
func (u *UserUsecase) List(ctx context.Context, q repo.UserListQuery) ([]model.User, error) {
	claims, ok := session.PeekClaims(u.store.AccessToken())
	if !ok || !model.Role(claims.Role).Staff() {
		return nil, ErrStaffOnly
	}
	return u.users.List(ctx, q)
}
