package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestOrderItem_TotalPrice_Fallbacks(t *testing.T) {
	//1. subtotal優先
	it := OrderItem{Quantity: 2, UnitPrice: fptr(3.0), Subtotal: fptr(5.5)}
	assert.InDelta(t, 5.5, it.TotalPrice(), 1e-9)

	//2. subtotalが無ければ unit_price × quantity
	it = OrderItem{Quantity: 2, UnitPrice: fptr(3.99)}
	assert.InDelta(t, 7.98, it.TotalPrice(), 1e-9)

	//3. 単価も無ければ埋め込みproductの現在価格
	it = OrderItem{Quantity: 3, Product: &Product{Price: 2.5}}
	assert.InDelta(t, 7.5, it.TotalPrice(), 1e-9)

	//4. 何も無ければ0
	it = OrderItem{Quantity: 4}
	assert.Equal(t, 0.0, it.TotalPrice())
}

func TestOrderItem_TotalPrice_ZeroSubtotalIgnored(t *testing.T) {
	//subtotal=0は「値なし」と同じ扱い
	it := OrderItem{Quantity: 2, UnitPrice: fptr(1.5), Subtotal: fptr(0)}
	assert.InDelta(t, 3.0, it.TotalPrice(), 1e-9)
}

func TestOrder_Total(t *testing.T) {
	//サーバー値があればそれを使う
	o := Order{
		TotalAmount: fptr(42.0),
		Items:       []OrderItem{{Quantity: 1, UnitPrice: fptr(1)}},
	}
	assert.InDelta(t, 42.0, o.Total(), 1e-9)

	//無ければ明細から積み上げる
	o = Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: fptr(3.99)},
			{Quantity: 1, UnitPrice: fptr(12.99)},
		},
	}
	assert.InDelta(t, 20.97, o.Total(), 1e-9)
}
