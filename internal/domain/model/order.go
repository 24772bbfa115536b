package model

import "time"

// 注文。一覧取得時は Items が空のことがあり、詳細取得で埋まる。
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id,omitempty"`
	Status      OrderStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	PickupTime  string      `json:"pickup_time,omitempty"`
	TotalAmount *float64    `json:"total_amount,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	Customer    *User       `json:"customer,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

func (o Order) CreatedTime() time.Time {
	return parseTimestamp(o.CreatedAt)
}

// 確定済み合計。サーバー値が無ければ明細から積み上げる。
func (o Order) Total() float64 {
	if o.TotalAmount != nil && *o.TotalAmount > 0 {
		return *o.TotalAmount
	}
	var sum float64
	for _, it := range o.Items {
		sum += it.TotalPrice()
	}
	return sum
}

// 注文明細。ID はサーバー発行。応答に無い場合はクライアント側で
// uuid を合成するため、再取得をまたいだ同一性は保証されない。
type OrderItem struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"order_id,omitempty"`
	ProductID string   `json:"product_id,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	Subtotal  *float64 `json:"subtotal,omitempty"`
	Note      string   `json:"special_instructions,omitempty"`
	Product   *Product `json:"product,omitempty"`
}

// 明細金額の解決順：
//  1. サーバーのsubtotal（>0）
//  2. unit_price × quantity（>0）
//  3. 埋め込みproductの現在価格 × quantity
//  4. 0
// バックエンドがバージョンによってどれを返すか一定しないため、
// どれが欠けても金額表示が空にならないようにする。
func (it OrderItem) TotalPrice() float64 {
	if it.Subtotal != nil && *it.Subtotal > 0 {
		return *it.Subtotal
	}
	if it.UnitPrice != nil && *it.UnitPrice > 0 {
		return *it.UnitPrice * float64(it.Quantity)
	}
	if it.Product != nil {
		return it.Product.Price * float64(it.Quantity)
	}
	return 0
}
