package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

const orderPageSize = 20

// OrderUsecase は自分の注文の閲覧側。ステータスは読み取り専用で、
// 進行の操作は持たない（それはAdminOrderUsecase）。
type OrderUsecase struct {
	mu      sync.Mutex
	orders  repo.OrderRepository
	list    []model.Order
	page    int
	hasMore bool
	status  string
}

// DI
func NewOrderUsecase(orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{orders: orders, page: 1, hasMore: true}
}

// Fetch loads the next page; refresh=true starts over from page 1.
// 1ページ丸ごと返ってきたら次ページがあるとみなす。
func (u *OrderUsecase) Fetch(ctx context.Context, refresh bool) error {
	u.mu.Lock()
	if refresh {
		u.page = 1
		u.hasMore = true
	}
	if !u.hasMore {
		u.mu.Unlock()
		return nil
	}
	page := u.page
	status := u.status
	u.mu.Unlock()

	fetched, err := u.orders.List(ctx, repo.OrderListQuery{
		Page:   page,
		Limit:  orderPageSize,
		Status: status,
	})
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if refresh {
		u.list = fetched
	} else {
		u.list = append(u.list, fetched...)
	}
	// サーバーの並び順に依存しない
	sortOrdersNewestFirst(u.list)
	u.hasMore = len(fetched) == orderPageSize
	u.page = page + 1
	return nil
}

// FilterByStatus sets the status filter and refreshes.
func (u *OrderUsecase) FilterByStatus(ctx context.Context, status string) error {
	u.mu.Lock()
	u.status = status
	u.mu.Unlock()
	return u.Fetch(ctx, true)
}

func (u *OrderUsecase) Orders() []model.Order {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]model.Order, len(u.list))
	copy(out, u.list)
	return out
}

func (u *OrderUsecase) HasMore() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hasMore
}

// Detail fetches one order. 一覧応答でItemsが空のことがあるので、
// その場合は /items を追加で引いて遅延補完する。
func (u *OrderUsecase) Detail(ctx context.Context, id string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if len(o.Items) == 0 {
		items, err := u.orders.ListItems(ctx, id)
		if err == nil {
			o.Items = items
		}
		// 明細取得の失敗は注文表示を妨げない
	}
	return o, nil
}

// Cancel deletes a pending order and drops it from the loaded list.
func (u *OrderUsecase) Cancel(ctx context.Context, id string) error {
	if err := u.orders.Delete(ctx, id); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.list {
		if u.list[i].ID == id {
			u.list = append(u.list[:i], u.list[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateDetails changes notes / pickup time and updates the loaded list.
func (u *OrderUsecase) UpdateDetails(ctx context.Context, id string, notes string, pickupTime *time.Time) (model.Order, error) {
	o, err := u.orders.Update(ctx, id, repo.UpdateOrderInput{Notes: notes, PickupTime: pickupTime})
	if err != nil {
		return model.Order{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.list {
		if u.list[i].ID == id {
			u.list[i] = o
			break
		}
	}
	return o, nil
}

// AddItem appends a line to a pending order.
// pending以外はサーバー側で422になる。
func (u *OrderUsecase) AddItem(ctx context.Context, orderID string, in repo.OrderItemInput) (model.OrderItem, error) {
	return u.orders.AddItem(ctx, orderID, in)
}

// UpdateItem changes quantity / instructions on a pending order's line.
func (u *OrderUsecase) UpdateItem(ctx context.Context, orderID string, itemID string, in repo.UpdateOrderItemInput) (model.OrderItem, error) {
	return u.orders.UpdateItem(ctx, orderID, itemID, in)
}

func (u *OrderUsecase) RemoveItem(ctx context.Context, orderID string, itemID string) error {
	return u.orders.RemoveItem(ctx, orderID, itemID)
}

// created_at降順（新しい順）
func sortOrdersNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
}
