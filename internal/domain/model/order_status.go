package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusPickedUp  OrderStatus = "pickedup"
	OrderStatusCompleted OrderStatus = "completed"
)

// 昇順の固定チェーン。途中スキップ・逆行は無い。
var orderStatusChain = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusPickedUp,
	OrderStatusCompleted,
}

// AllOrderStatuses returns the chain in display order.
func AllOrderStatuses() []OrderStatus {
	chain := make([]OrderStatus, len(orderStatusChain))
	copy(chain, orderStatusChain)
	return chain
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	return s.Index() >= 0
}

// チェーン内の位置。不明なステータスは-1。
func (s OrderStatus) Index() int {
	for i, v := range orderStatusChain {
		if v == s {
			return i
		}
	}
	return -1
}

// Next returns the single next status in the chain.
// completed（終端）と不明ステータスは ok=false。
func (s OrderStatus) Next() (OrderStatus, bool) {
	i := s.Index()
	if i < 0 || i == len(orderStatusChain)-1 {
		return "", false
	}
	return orderStatusChain[i+1], true
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted
}

func (s OrderStatus) DisplayName() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusReady:
		return "Ready for Pickup"
	case OrderStatusPickedUp, OrderStatusCompleted:
		return "Picked Up"
	default:
		return string(s)
	}
}

// ParseOrderStatus normalizes a wire status string.
// 旧リリースの "picked_up" 表記は "pickedup" に寄せる。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	if s == "picked_up" {
		return OrderStatusPickedUp, true
	}
	st := OrderStatus(s)
	if st.Valid() {
		return st, true
	}
	return "", false
}
