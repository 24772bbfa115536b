package model

import "time"

// 商品。サーバー応答から生成される読み取り専用レコード。
// 同一性はIDのみで判定する（価格や名前が変わっても同じ商品）。
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// IDのみで比較
func (p Product) Equal(other Product) bool {
	return p.ID == other.ID
}

// is_available欠落は「販売中」扱い（バックエンドの慣習）
func (p Product) Available() bool {
	return p.IsAvailable == nil || *p.IsAvailable
}

// created_atをパースする。形式不明なら zero time。
func (p Product) CreatedTime() time.Time {
	return parseTimestamp(p.CreatedAt)
}

// ISO8601（fractional秒あり/なし）を試す
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
