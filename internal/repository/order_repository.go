package repository

import (
	"context"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
)

type OrderListQuery struct {
	Page   int
	Limit  int
	Status string
}

type CreateOrderInput struct {
	Notes      string
	PickupTime *time.Time
	Items      []OrderItemInput
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
	Note      string
}

type UpdateOrderInput struct {
	Notes      string
	PickupTime *time.Time
}

type UpdateOrderItemInput struct {
	Quantity *int
	Note     string
}

type OrderRepository interface {
	Create(ctx context.Context, in CreateOrderInput) (model.Order, error)
	List(ctx context.Context, q OrderListQuery) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (model.Order, error)
	Update(ctx context.Context, id string, in UpdateOrderInput) (model.Order, error)
	// pending注文のみサーバー側で許可される
	Delete(ctx context.Context, id string) error

	// staff専用。サーバーが遷移の最終判定を持つ。
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error)

	// 注文明細サブリソース
	ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	AddItem(ctx context.Context, orderID string, in OrderItemInput) (model.OrderItem, error)
	UpdateItem(ctx context.Context, orderID string, itemID string, in UpdateOrderItemInput) (model.OrderItem, error)
	RemoveItem(ctx context.Context, orderID string, itemID string) error
}
