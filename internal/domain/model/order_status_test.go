package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Chain(t *testing.T) {
	want := []OrderStatus{
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusPickedUp,
		OrderStatusCompleted,
	}
	assert.Equal(t, want, AllOrderStatuses())
}

func TestOrderStatus_Next(t *testing.T) {
	//各状態は次の1状態だけに進む
	next, ok := OrderStatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPreparing, next)

	next, ok = OrderStatusReady.Next()
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPickedUp, next)

	//終端からは進めない
	_, ok = OrderStatusCompleted.Next()
	assert.False(t, ok)
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.False(t, OrderStatusPickedUp.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
}

func TestOrderStatus_Index(t *testing.T) {
	assert.Equal(t, 0, OrderStatusPending.Index())
	assert.Equal(t, 4, OrderStatusCompleted.Index())

	//未知の状態は-1
	assert.Equal(t, -1, OrderStatus("shipped").Index())
}

func TestOrderStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "Pending", OrderStatusPending.DisplayName())
	assert.Equal(t, "Ready for Pickup", OrderStatusReady.DisplayName())

	//pickedupとcompletedは同じ表示名
	assert.Equal(t, "Picked Up", OrderStatusPickedUp.DisplayName())
	assert.Equal(t, "Picked Up", OrderStatusCompleted.DisplayName())
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("preparing")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPreparing, s)

	//snake_case表記も受ける
	s, ok = ParseOrderStatus("picked_up")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPickedUp, s)

	_, ok = ParseOrderStatus("cancelled")
	assert.False(t, ok)
}
