package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

// CartUsecase はカートのローカル集約。
// 1商品1行のマージと数量>=1をここで保証する。
// 変更系は全てmutexで直列化する（1セッション1カート前提）。
type CartUsecase struct {
	mu     sync.Mutex
	lines  []model.CartLine
	orders repo.OrderRepository
	log    *slog.Logger
}

// DI
func NewCartUsecase(orders repo.OrderRepository, log *slog.Logger) *CartUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CartUsecase{orders: orders, log: log}
}

// AddOrUpdate adds quantity to an existing line or inserts a new one.
// 同一商品は必ずマージ。noteは指定された時だけ上書き。
func (u *CartUsecase) AddOrUpdate(p model.Product, quantity int, note string) {
	if quantity < 1 {
		quantity = 1
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.lines {
		if u.lines[i].Product.ID == p.ID {
			u.lines[i].Quantity += quantity
			if note != "" {
				u.lines[i].Note = note
			}
			return
		}
	}
	u.lines = append(u.lines, model.CartLine{Product: p, Quantity: quantity, Note: note})
}

// SetQuantity sets the exact quantity; zero or less removes the line.
func (u *CartUsecase) SetQuantity(p model.Product, quantity int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.lines {
		if u.lines[i].Product.ID == p.ID {
			if quantity <= 0 {
				u.lines = append(u.lines[:i], u.lines[i+1:]...)
			} else {
				u.lines[i].Quantity = quantity
			}
			return
		}
	}
}

func (u *CartUsecase) Increment(index int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if index < 0 || index >= len(u.lines) {
		return
	}
	u.lines[index].Quantity++
}

// Decrement decreases the quantity; reaching zero removes the line.
// 数量0の行は存在させない。
func (u *CartUsecase) Decrement(index int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if index < 0 || index >= len(u.lines) {
		return
	}
	if u.lines[index].Quantity > 1 {
		u.lines[index].Quantity--
	} else {
		u.lines = append(u.lines[:index], u.lines[index+1:]...)
	}
}

func (u *CartUsecase) Remove(index int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if index < 0 || index >= len(u.lines) {
		return
	}
	u.lines = append(u.lines[:index], u.lines[index+1:]...)
}

func (u *CartUsecase) UpdateNote(productID string, note string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.lines {
		if u.lines[i].Product.ID == productID {
			u.lines[i].Note = note
			return
		}
	}
}

func (u *CartUsecase) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lines = nil
}

// Lines returns a copy of the current lines.
func (u *CartUsecase) Lines() []model.CartLine {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]model.CartLine, len(u.lines))
	copy(out, u.lines)
	return out
}

// TotalPrice は常に商品の現在価格で計算する（スナップショットではない）。
func (u *CartUsecase) TotalPrice() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()

	var sum float64
	for _, l := range u.lines {
		sum += l.TotalPrice()
	}
	return sum
}

// ItemCount は行数ではなく数量の合計。
func (u *CartUsecase) ItemCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	var n int
	for _, l := range u.lines {
		n += l.Quantity
	}
	return n
}

func (u *CartUsecase) IsEmpty() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.lines) == 0
}

func (u *CartUsecase) QuantityFor(productID string) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, l := range u.lines {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

func (u *CartUsecase) Contains(productID string) bool {
	return u.QuantityFor(productID) > 0
}

// ToOrderRequest serializes the cart into an order-creation request.
// optionalなトップレベル項目は空なら省略される（nullは送らない）。
func (u *CartUsecase) ToOrderRequest(notes string, pickupTime *time.Time) (repo.CreateOrderInput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.lines) == 0 {
		return repo.CreateOrderInput{}, ErrEmptyCart
	}

	in := repo.CreateOrderInput{
		Notes:      notes,
		PickupTime: pickupTime,
		Items:      make([]repo.OrderItemInput, 0, len(u.lines)),
	}
	for _, l := range u.lines {
		in.Items = append(in.Items, repo.OrderItemInput{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Note:      l.Note,
		})
	}
	return in, nil
}

// PlaceOrder submits the cart and clears it on confirmation.
// 2xxだが応答が読めなかった場合（KindDecoding）は注文自体は作られて
// いるので、カートは空にして order=nil で成功扱いにする。
// それ以外の失敗ではカートを保持する。
func (u *CartUsecase) PlaceOrder(ctx context.Context, notes string, pickupTime *time.Time) (*model.Order, error) {
	in, err := u.ToOrderRequest(notes, pickupTime)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, in)
	if err != nil {
		if gateway.IsKind(err, gateway.KindDecoding) {
			u.log.Debug("order created but response was unreadable, clearing cart anyway", "error", err)
			u.Clear()
			return nil, nil
		}
		return nil, err
	}

	u.Clear()
	return &order, nil
}
