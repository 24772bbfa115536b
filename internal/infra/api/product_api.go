package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	"github.com/bryantlimm/setaside-go/internal/normalize"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

type ProductAPIRepository struct {
	gw *gateway.Gateway
}

// DI
func NewProductAPIRepository(gw *gateway.Gateway) *ProductAPIRepository {
	return &ProductAPIRepository{gw: gw}
}

type productRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	IsAvailable   bool    `json:"is_available"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
}

// 公開一覧。認証不要。
func (r *ProductAPIRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(defaultPage(q.Page)))
	v.Set("limit", strconv.Itoa(defaultLimit(q.Limit, 20)))
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.IsAvailable != nil {
		v.Set("is_available", strconv.FormatBool(*q.IsAvailable))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	data, err := r.gw.Do(ctx, http.MethodGet, "/products?"+v.Encode(), nil, false)
	if err != nil {
		return nil, err
	}
	return normalize.Products(data), nil
}

// staff用の全件一覧（公開状態に関わらず返る）
func (r *ProductAPIRepository) ListAll(ctx context.Context, page int, limit int) ([]model.Product, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(defaultPage(page)))
	v.Set("limit", strconv.Itoa(defaultLimit(limit, 100)))

	data, err := r.gw.Do(ctx, http.MethodGet, "/products?"+v.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	return normalize.Products(data), nil
}

func (r *ProductAPIRepository) Categories(ctx context.Context) ([]string, error) {
	data, err := r.gw.Do(ctx, http.MethodGet, "/products/categories", nil, false)
	if err != nil {
		return nil, err
	}
	return normalize.Categories(data), nil
}

func (r *ProductAPIRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	data, err := r.gw.Do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, false)
	if err != nil {
		return model.Product{}, err
	}
	p, derr := normalize.Product(data)
	if derr != nil {
		return model.Product{}, gateway.DecodingError(derr)
	}
	return p, nil
}

func (r *ProductAPIRepository) Create(ctx context.Context, in repo.ProductInput) (model.Product, error) {
	data, err := r.gw.Do(ctx, http.MethodPost, "/products", toProductRequest(in), true)
	if err != nil {
		return model.Product{}, err
	}
	p, derr := normalize.Product(data)
	if derr != nil {
		return model.Product{}, gateway.DecodingError(derr)
	}
	return p, nil
}

func (r *ProductAPIRepository) Update(ctx context.Context, id string, in repo.ProductInput) (model.Product, error) {
	data, err := r.gw.Do(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), toProductRequest(in), true)
	if err != nil {
		return model.Product{}, err
	}
	p, derr := normalize.Product(data)
	if derr != nil {
		return model.Product{}, gateway.DecodingError(derr)
	}
	return p, nil
}

func (r *ProductAPIRepository) Delete(ctx context.Context, id string) error {
	return r.gw.DoNoContent(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, true)
}

func toProductRequest(in repo.ProductInput) productRequest {
	return productRequest{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		IsAvailable:   in.IsAvailable,
		StockQuantity: in.StockQuantity,
	}
}

func defaultPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func defaultLimit(limit int, fallback int) int {
	if limit < 1 {
		return fallback
	}
	return limit
}

// 共通のID検証（URL組み立て前に弾く）
func requireID(id string) error {
	if id == "" {
		return gateway.NewAPIError(gateway.KindInvalidRequest, 0, fmt.Sprintf("invalid id %q", id))
	}
	return nil
}
