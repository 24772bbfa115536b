package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newItemID() string {
	return uuid.NewString()
}

// ステータス遷移の並び。終端はcompleted。
var statusChain = []string{"pending", "preparing", "ready", "pickedup", "completed"}

func statusIndex(s string) int {
	for i, v := range statusChain {
		if v == s {
			return i
		}
	}
	return -1
}

// /orders のAPI
type OrderHandler struct {
	store *Store
}

// DI
func NewOrderHandler(store *Store) *OrderHandler {
	return &OrderHandler{store: store}
}

type orderItemRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"special_instructions"`
}

type createOrderRequest struct {
	Notes      string             `json:"notes"`
	PickupTime string             `json:"pickup_time"`
	Items      []orderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	Notes      string `json:"notes"`
	PickupTime string `json:"pickup_time"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateItemRequest struct {
	Quantity     *int   `json:"quantity"`
	Instructions string `json:"special_instructions"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, errorBody(c, "items must not be empty"))
	}

	userID, _ := c.Get(ctxUserIDKey).(string)

	items := make([]orderItemRecord, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := h.store.FindProduct(it.ProductID)
		if !ok {
			return c.JSON(http.StatusBadRequest, errorBody(c, "unknown product: "+it.ProductID))
		}
		if it.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "quantity must be positive"))
		}
		items = append(items, orderItemRecord{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Note:      it.Instructions,
		})
	}

	o := h.store.PutOrder(orderRecord{
		UserID:     userID,
		Notes:      req.Notes,
		PickupTime: req.PickupTime,
		Items:      items,
	})
	return respondOne(c, http.StatusCreated, "order", h.orderJSON(o))
}

func (h *OrderHandler) List(c echo.Context) error {
	// staffは全件、customerは自分の注文のみ
	role, _ := c.Get(ctxUserRoleKey).(string)
	userID, _ := c.Get(ctxUserIDKey).(string)
	if role == "staff" || role == "admin" {
		userID = ""
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid page"))
		}
		page = p
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid limit"))
		}
		limit = l
	}
	status := c.QueryParam("status")

	all := h.store.ListOrders(userID)
	filtered := make([]orderRecord, 0, len(all))
	for _, o := range all {
		if status != "" && o.Status != status {
			continue
		}
		filtered = append(filtered, o)
	}

	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	out := make([]map[string]interface{}, 0, end-start)
	for _, o := range filtered[start:end] {
		out = append(out, h.orderJSON(o))
	}
	return respondList(c, http.StatusOK, "orders", out)
}

func (h *OrderHandler) Detail(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}
	return respondOne(c, http.StatusOK, "order", h.orderJSON(o))
}

func (h *OrderHandler) Update(c echo.Context) error {
	if _, ok := h.findVisible(c); !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	o, _ := h.store.UpdateOrder(c.Param("id"), func(o *orderRecord) {
		if req.Notes != "" {
			o.Notes = req.Notes
		}
		if req.PickupTime != "" {
			o.PickupTime = req.PickupTime
		}
	})
	return respondOne(c, http.StatusOK, "order", h.orderJSON(o))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	cur, ok := h.store.FindOrder(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	//遷移チェック：次の1状態のみ許可
	from := statusIndex(cur.Status)
	to := statusIndex(req.Status)
	if to < 0 {
		return c.JSON(http.StatusBadRequest, errorBody(c, "unknown status: "+req.Status))
	}
	if to != from+1 {
		msg := fmt.Sprintf("cannot transition from %s to %s", cur.Status, req.Status)
		return c.JSON(http.StatusUnprocessableEntity, errorBody(c, msg))
	}

	o, _ := h.store.UpdateOrder(cur.ID, func(o *orderRecord) {
		o.Status = req.Status
	})
	return respondOne(c, http.StatusOK, "order", h.orderJSON(o))
}

func (h *OrderHandler) Delete(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	//pendingのみキャンセル可
	if o.Status != "pending" {
		return c.JSON(http.StatusUnprocessableEntity, errorBody(c, "only pending orders can be cancelled"))
	}

	h.store.DeleteOrder(o.ID)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) ListItems(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	out := make([]map[string]interface{}, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, h.itemJSON(it))
	}
	return respondList(c, http.StatusOK, "items", out)
}

func (h *OrderHandler) AddItem(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}
	if o.Status != "pending" {
		return c.JSON(http.StatusUnprocessableEntity, errorBody(c, "order is no longer editable"))
	}

	var req orderItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}
	p, ok := h.store.FindProduct(req.ProductID)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody(c, "unknown product: "+req.ProductID))
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, errorBody(c, "quantity must be positive"))
	}

	item := orderItemRecord{
		ID:        "",
		ProductID: p.ID,
		Quantity:  req.Quantity,
		UnitPrice: p.Price,
		Note:      req.Instructions,
	}
	h.store.UpdateOrder(o.ID, func(o *orderRecord) {
		item.ID = newItemID()
		o.Items = append(o.Items, item)
	})
	return respondOne(c, http.StatusCreated, "item", h.itemJSON(item))
}

func (h *OrderHandler) UpdateItem(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	itemID := c.Param("itemID")
	var updated *orderItemRecord
	h.store.UpdateOrder(o.ID, func(o *orderRecord) {
		for i := range o.Items {
			if o.Items[i].ID != itemID {
				continue
			}
			if req.Quantity != nil && *req.Quantity > 0 {
				o.Items[i].Quantity = *req.Quantity
			}
			if req.Instructions != "" {
				o.Items[i].Note = req.Instructions
			}
			updated = &o.Items[i]
			return
		}
	})
	if updated == nil {
		return c.JSON(http.StatusNotFound, errorBody(c, "order item not found"))
	}
	return respondOne(c, http.StatusOK, "item", h.itemJSON(*updated))
}

func (h *OrderHandler) RemoveItem(c echo.Context) error {
	o, ok := h.findVisible(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "order not found"))
	}

	itemID := c.Param("itemID")
	removed := false
	h.store.UpdateOrder(o.ID, func(o *orderRecord) {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items = append(o.Items[:i], o.Items[i+1:]...)
				removed = true
				return
			}
		}
	})
	if !removed {
		return c.JSON(http.StatusNotFound, errorBody(c, "order item not found"))
	}
	return c.NoContent(http.StatusNoContent)
}

// 自分の注文か（staffは全件可視）。
func (h *OrderHandler) findVisible(c echo.Context) (orderRecord, bool) {
	o, ok := h.store.FindOrder(c.Param("id"))
	if !ok {
		return orderRecord{}, false
	}
	role, _ := c.Get(ctxUserRoleKey).(string)
	userID, _ := c.Get(ctxUserIDKey).(string)
	if role != "staff" && role != "admin" && o.UserID != userID {
		return orderRecord{}, false
	}
	return o, true
}

func (h *OrderHandler) orderJSON(o orderRecord) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(o.Items))
	total := 0.0
	for _, it := range o.Items {
		items = append(items, h.itemJSON(it))
		total += it.UnitPrice * float64(it.Quantity)
	}

	out := map[string]interface{}{
		"id":           o.ID,
		"user_id":      o.UserID,
		"status":       o.Status,
		"notes":        o.Notes,
		"total_amount": total,
		"items":        items,
		"created_at":   o.CreatedAt.Format(time.RFC3339),
		"updated_at":   o.UpdatedAt.Format(time.RFC3339),
	}
	if o.PickupTime != "" {
		out["pickup_time"] = o.PickupTime
	}
	return out
}

// unit_priceはあえて文字列で返す（数値文字列を寛容に読む側の確認用）。
func (h *OrderHandler) itemJSON(it orderItemRecord) map[string]interface{} {
	out := map[string]interface{}{
		"id":         it.ID,
		"product_id": it.ProductID,
		"quantity":   it.Quantity,
		"unit_price": strconv.FormatFloat(it.UnitPrice, 'f', 2, 64),
		"subtotal":   it.UnitPrice * float64(it.Quantity),
	}
	if it.Note != "" {
		out["special_instructions"] = it.Note
	}
	if p, ok := h.store.FindProduct(it.ProductID); ok {
		out["product"] = productJSON(p)
	}
	return out
}
