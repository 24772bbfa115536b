package api

import (
	"context"
	"net/http"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	"github.com/bryantlimm/setaside-go/internal/normalize"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

type AuthAPIRepository struct {
	gw *gateway.Gateway
}

// DI
func NewAuthAPIRepository(gw *gateway.Gateway) *AuthAPIRepository {
	return &AuthAPIRepository{gw: gw}
}

// リクエストDTO（wire形式、optionalは省略しnullは送らない）
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AuthAPIRepository) Register(ctx context.Context, in repo.RegisterInput) (repo.AuthResult, error) {
	body := registerRequest{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Phone:    in.Phone,
	}
	data, err := r.gw.Do(ctx, http.MethodPost, "/auth/register", body, false)
	if err != nil {
		return repo.AuthResult{}, err
	}
	return decodeAuthResult(data)
}

func (r *AuthAPIRepository) Login(ctx context.Context, email string, password string) (repo.AuthResult, error) {
	data, err := r.gw.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return repo.AuthResult{}, err
	}
	return decodeAuthResult(data)
}

func (r *AuthAPIRepository) CurrentUser(ctx context.Context) (model.User, error) {
	data, err := r.gw.Do(ctx, http.MethodGet, "/auth/me", nil, true)
	if err != nil {
		return model.User{}, err
	}
	u, derr := normalize.User(data)
	if derr != nil {
		return model.User{}, gateway.DecodingError(derr)
	}
	return u, nil
}

func decodeAuthResult(data []byte) (repo.AuthResult, error) {
	s, err := normalize.Auth(data)
	if err != nil {
		return repo.AuthResult{}, gateway.DecodingError(err)
	}
	return repo.AuthResult{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         s.User,
	}, nil
}
