package repository

import (
	"context"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// 認証APIの応答（トークン＋ユーザー概要）
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

type AuthRepository interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email string, password string) (AuthResult, error)
	CurrentUser(ctx context.Context) (model.User, error)
}
