package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	"github.com/bryantlimm/setaside-go/internal/normalize"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

type UserAPIRepository struct {
	gw *gateway.Gateway
}

// DI
func NewUserAPIRepository(gw *gateway.Gateway) *UserAPIRepository {
	return &UserAPIRepository{gw: gw}
}

type updateProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (r *UserAPIRepository) Me(ctx context.Context) (model.User, error) {
	data, err := r.gw.Do(ctx, http.MethodGet, "/users/me", nil, true)
	if err != nil {
		return model.User{}, err
	}
	u, derr := normalize.User(data)
	if derr != nil {
		return model.User{}, gateway.DecodingError(derr)
	}
	return u, nil
}

func (r *UserAPIRepository) UpdateMe(ctx context.Context, in repo.UpdateProfileInput) (model.User, error) {
	body := updateProfileRequest{FullName: in.FullName, Phone: in.Phone}
	data, err := r.gw.Do(ctx, http.MethodPatch, "/users/me", body, true)
	if err != nil {
		return model.User{}, err
	}
	u, derr := normalize.User(data)
	if derr != nil {
		return model.User{}, gateway.DecodingError(derr)
	}
	return u, nil
}

func (r *UserAPIRepository) List(ctx context.Context, q repo.UserListQuery) ([]model.User, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(defaultPage(q.Page)))
	v.Set("limit", strconv.Itoa(defaultLimit(q.Limit, 10)))
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	data, err := r.gw.Do(ctx, http.MethodGet, "/users?"+v.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	return normalize.Users(data), nil
}
