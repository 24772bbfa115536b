package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, in repo.CreateOrderInput) (model.Order, error) {
	args := m.Called(ctx, in)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, q repo.OrderListQuery) ([]model.Order, error) {
	args := m.Called(ctx, q)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, id string, in repo.UpdateOrderInput) (model.Order, error) {
	args := m.Called(ctx, id, in)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderRepoMock) AddItem(ctx context.Context, orderID string, in repo.OrderItemInput) (model.OrderItem, error) {
	panic("not used in these tests")
}

func (m *OrderRepoMock) UpdateItem(ctx context.Context, orderID string, itemID string, in repo.UpdateOrderItemInput) (model.OrderItem, error) {
	panic("not used in these tests")
}

func (m *OrderRepoMock) RemoveItem(ctx context.Context, orderID string, itemID string) error {
	panic("not used in these tests")
}

type AuthRepoMock struct{ mock.Mock }

func (m *AuthRepoMock) Register(ctx context.Context, in repo.RegisterInput) (repo.AuthResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(repo.AuthResult)
	return r, args.Error(1)
}

func (m *AuthRepoMock) Login(ctx context.Context, email string, password string) (repo.AuthResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(repo.AuthResult)
	return r, args.Error(1)
}

func (m *AuthRepoMock) CurrentUser(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

// =====================
// Helpers
// =====================

// ロール入りの署名済みトークンを作る（peek側は署名を見ない）
func tokenWithRole(t *testing.T, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  "u1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test_secret"))
	assert.NoError(t, err)
	return signed
}

func product(id, name string, price float64) model.Product {
	return model.Product{ID: id, Name: name, Price: price}
}
