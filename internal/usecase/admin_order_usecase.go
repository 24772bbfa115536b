package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
)

const adminOrderPageLimit = 100

// AdminOrderUsecase drives the order lifecycle forward (staff only).
// 進行は必ず「次の1状態」のみ。スキップや逆行のAPIは持たない。
type AdminOrderUsecase struct {
	mu     sync.Mutex
	orders repo.OrderRepository
	store  session.Store
	log    *slog.Logger

	list []model.Order

	// completed到達時に呼ばれる（レシート発行などの起点）。
	// 状態機械自体には後続処理を入れない。
	onCompleted func(model.Order)
}

// DI
func NewAdminOrderUsecase(orders repo.OrderRepository, store session.Store, log *slog.Logger) *AdminOrderUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &AdminOrderUsecase{orders: orders, store: store, log: log}
}

// OnCompleted registers the post-fulfillment hook.
func (u *AdminOrderUsecase) OnCompleted(fn func(model.Order)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.onCompleted = fn
}

// staffロールのチェック。トークンのrole claimをpeekする。
func (u *AdminOrderUsecase) requireStaff() error {
	claims, ok := session.PeekClaims(u.store.AccessToken())
	if !ok || !model.Role(claims.Role).Staff() {
		return ErrStaffOnly
	}
	return nil
}

// LoadAll fetches the staff-wide order list, newest first.
func (u *AdminOrderUsecase) LoadAll(ctx context.Context) error {
	if err := u.requireStaff(); err != nil {
		return err
	}

	fetched, err := u.orders.List(ctx, repo.OrderListQuery{Page: 1, Limit: adminOrderPageLimit})
	if err != nil {
		return err
	}
	sortOrdersNewestFirst(fetched)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.list = fetched
	return nil
}

func (u *AdminOrderUsecase) Orders() []model.Order {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]model.Order, len(u.list))
	copy(out, u.list)
	return out
}

// Filtered returns the loaded orders with the given status.
// 読み取り専用の射影で、別の状態は持たない。
func (u *AdminOrderUsecase) Filtered(status model.OrderStatus) []model.Order {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]model.Order, 0, len(u.list))
	for _, o := range u.list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func (u *AdminOrderUsecase) Pending() []model.Order   { return u.Filtered(model.OrderStatusPending) }
func (u *AdminOrderUsecase) Preparing() []model.Order { return u.Filtered(model.OrderStatusPreparing) }
func (u *AdminOrderUsecase) Ready() []model.Order     { return u.Filtered(model.OrderStatusReady) }
func (u *AdminOrderUsecase) PickedUp() []model.Order  { return u.Filtered(model.OrderStatusPickedUp) }

func (u *AdminOrderUsecase) find(orderID string) (model.Order, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, o := range u.list {
		if o.ID == orderID {
			return o, true
		}
	}
	return model.Order{}, false
}

// AdvanceStatus moves the order to its single next status.
// 確定コミット方式：サーバー往復が成功するまでローカルは変えず、
// 成功後に一覧を引き直す（refreshはadvance完了の後に直列で走る）。
func (u *AdminOrderUsecase) AdvanceStatus(ctx context.Context, orderID string) (model.Order, error) {
	if err := u.requireStaff(); err != nil {
		return model.Order{}, err
	}

	current, ok := u.find(orderID)
	if !ok {
		return model.Order{}, ErrOrderNotLoaded
	}
	next, ok := current.Status.Next()
	if !ok {
		return model.Order{}, ErrTerminalStatus
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return model.Order{}, err
	}

	// completed到達はサーバー往復で確定済みなので、引き直しの成否に関係なくここで通知する。
	if updated.Status.Terminal() {
		u.fireCompleted(updated)
	}

	if err := u.LoadAll(ctx); err != nil {
		// 遷移自体は確定済み。一覧の引き直し失敗は遷移結果を返しつつ伝える。
		return updated, err
	}
	return updated, nil
}

// AdvanceStatusOptimistic is the optimistic-removal strategy:
// ローカル一覧から即座に外し、確定のネットワーク呼び出しは切り離して
// 走らせる。その失敗はdebugログに残すだけで呼び出し側には返さない。
// 体感速度を取って失敗可視性を捨てる、明示的なトレードオフ。
func (u *AdminOrderUsecase) AdvanceStatusOptimistic(ctx context.Context, orderID string) error {
	if err := u.requireStaff(); err != nil {
		return err
	}

	current, ok := u.find(orderID)
	if !ok {
		return ErrOrderNotLoaded
	}
	next, ok := current.Status.Next()
	if !ok {
		return ErrTerminalStatus
	}

	u.mu.Lock()
	for i := range u.list {
		if u.list[i].ID == orderID {
			u.list = append(u.list[:i], u.list[i+1:]...)
			break
		}
	}
	u.mu.Unlock()

	if next.Terminal() {
		current.Status = next
		u.fireCompleted(current)
	}

	go func() {
		if _, err := u.orders.UpdateStatus(context.WithoutCancel(ctx), orderID, next); err != nil {
			u.log.Debug("background status confirmation failed (intentionally discarded)",
				"order_id", orderID, "status", next, "error", err)
		}
	}()
	return nil
}

// NextStatus exposes the pure transition for display purposes.
func (u *AdminOrderUsecase) NextStatus(current model.OrderStatus) (model.OrderStatus, bool) {
	return current.Next()
}

func (u *AdminOrderUsecase) fireCompleted(o model.Order) {
	u.mu.Lock()
	fn := u.onCompleted
	u.mu.Unlock()
	if fn != nil {
		fn(o)
	}
}
