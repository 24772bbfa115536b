package model

// カートの明細。注文確定までクライアント内のみで生きる。
// 1商品につき1行（同じ商品の追加は数量加算でマージ）。
type CartLine struct {
	Product  Product
	Quantity int
	Note     string
}

// カートは常に商品の現在価格で計算する。
// 注文確定後のOrderItemはスナップショット価格なのでこことは別。
func (l CartLine) TotalPrice() float64 {
	return l.Product.Price * float64(l.Quantity)
}
