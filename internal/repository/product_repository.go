package repository

import (
	"context"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page        int
	Limit       int
	Category    string
	IsAvailable *bool
	Search      string
}

// 商品APIの呼び出しだけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	// staff専用（要認証）
	ListAll(ctx context.Context, page int, limit int) ([]model.Product, error)
	Create(ctx context.Context, in ProductInput) (model.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	IsAvailable   bool
	StockQuantity *int
}
