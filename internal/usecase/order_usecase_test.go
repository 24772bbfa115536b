package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func makeOrders(n int) []model.Order {
	out := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Order{ID: fmt.Sprintf("o%d", i), Status: model.OrderStatusPending})
	}
	return out
}

func TestOrderUsecase_Fetch_Pagination(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	//1ページ目：満杯 → まだある
	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 1, Limit: 20}).
		Return(makeOrders(20), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), true))
	assert.Len(t, uc.Orders(), 20)
	assert.True(t, uc.HasMore())

	//2ページ目：半端 → 終端
	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 2, Limit: 20}).
		Return(makeOrders(5), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), false))
	assert.Len(t, uc.Orders(), 25)
	assert.False(t, uc.HasMore())

	//終端以降のFetchはネットワークに出ない
	assert.NoError(t, uc.Fetch(context.Background(), false))
	orders.AssertExpectations(t)
}

func TestOrderUsecase_Fetch_RefreshResets(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 1, Limit: 20}).
		Return(makeOrders(20), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), true))

	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 2, Limit: 20}).
		Return(makeOrders(20), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), false))
	assert.Len(t, uc.Orders(), 40)

	//refreshで1ページ目から取り直し
	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 1, Limit: 20}).
		Return(makeOrders(3), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), true))
	assert.Len(t, uc.Orders(), 3)
	assert.False(t, uc.HasMore())
}

func TestOrderUsecase_FilterByStatus(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	orders.On("List", mock.Anything, repo.OrderListQuery{Page: 1, Limit: 20, Status: "ready"}).
		Return(makeOrders(2), nil).Once()

	assert.NoError(t, uc.FilterByStatus(context.Background(), "ready"))
	assert.Len(t, uc.Orders(), 2)
	orders.AssertExpectations(t)
}

func TestOrderUsecase_Detail_LazyItems(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	//一覧系応答でItemsが空のままの注文
	orders.On("FindByID", mock.Anything, "o1").
		Return(model.Order{ID: "o1", Status: model.OrderStatusReady}, nil)
	orders.On("ListItems", mock.Anything, "o1").
		Return([]model.OrderItem{{ID: "i1", ProductID: "p1", Quantity: 2}}, nil)

	o, err := uc.Detail(context.Background(), "o1")
	assert.NoError(t, err)
	assert.Len(t, o.Items, 1)
	orders.AssertExpectations(t)
}

func TestOrderUsecase_Detail_ItemFetchFailureIsNotFatal(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	orders.On("FindByID", mock.Anything, "o1").
		Return(model.Order{ID: "o1", Status: model.OrderStatusReady}, nil)
	orders.On("ListItems", mock.Anything, "o1").
		Return(nil, assert.AnError)

	//明細が取れなくても注文は返す
	o, err := uc.Detail(context.Background(), "o1")
	assert.NoError(t, err)
	assert.Empty(t, o.Items)
}

func TestOrderUsecase_Detail_SkipsItemsWhenEmbedded(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	embedded := model.Order{
		ID:     "o1",
		Status: model.OrderStatusReady,
		Items:  []model.OrderItem{{ID: "i1", Quantity: 1}},
	}
	orders.On("FindByID", mock.Anything, "o1").Return(embedded, nil)

	//Itemsが埋まっていれば追加リクエストはしない
	o, err := uc.Detail(context.Background(), "o1")
	assert.NoError(t, err)
	assert.Len(t, o.Items, 1)
	orders.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Cancel(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	orders.On("List", mock.Anything, mock.Anything).Return(makeOrders(3), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), true))

	orders.On("Delete", mock.Anything, "o1").Return(nil)
	assert.NoError(t, uc.Cancel(context.Background(), "o1"))

	//ローカル一覧からも消える
	for _, o := range uc.Orders() {
		assert.NotEqual(t, "o1", o.ID)
	}
}

func TestOrderUsecase_Cancel_FailureKeepsList(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := NewOrderUsecase(orders)

	orders.On("List", mock.Anything, mock.Anything).Return(makeOrders(2), nil).Once()
	assert.NoError(t, uc.Fetch(context.Background(), true))

	orders.On("Delete", mock.Anything, "o0").Return(assert.AnError)
	assert.Error(t, uc.Cancel(context.Background(), "o0"))
	assert.Len(t, uc.Orders(), 2)
}
