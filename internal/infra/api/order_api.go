package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	"github.com/bryantlimm/setaside-go/internal/normalize"
	repo "github.com/bryantlimm/setaside-go/internal/repository"
)

type OrderAPIRepository struct {
	gw *gateway.Gateway
}

// DI
func NewOrderAPIRepository(gw *gateway.Gateway) *OrderAPIRepository {
	return &OrderAPIRepository{gw: gw}
}

type createOrderItemRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"special_instructions,omitempty"`
}

type createOrderRequest struct {
	Notes      string                   `json:"notes,omitempty"`
	PickupTime string                   `json:"pickup_time,omitempty"`
	Items      []createOrderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	Notes      string `json:"notes,omitempty"`
	PickupTime string `json:"pickup_time,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type updateOrderItemRequest struct {
	Quantity     *int   `json:"quantity,omitempty"`
	Instructions string `json:"special_instructions,omitempty"`
}

func (r *OrderAPIRepository) Create(ctx context.Context, in repo.CreateOrderInput) (model.Order, error) {
	body := createOrderRequest{
		Notes:      in.Notes,
		PickupTime: formatPickupTime(in.PickupTime),
		Items:      make([]createOrderItemRequest, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		body.Items = append(body.Items, createOrderItemRequest{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Instructions: it.Note,
		})
	}

	data, err := r.gw.Do(ctx, http.MethodPost, "/orders", body, true)
	if err != nil {
		return model.Order{}, err
	}
	return decodeOrder(data)
}

func (r *OrderAPIRepository) List(ctx context.Context, q repo.OrderListQuery) ([]model.Order, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(defaultPage(q.Page)))
	v.Set("limit", strconv.Itoa(defaultLimit(q.Limit, 20)))
	if q.Status != "" {
		v.Set("status", q.Status)
	}

	data, err := r.gw.Do(ctx, http.MethodGet, "/orders?"+v.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	return normalize.Orders(data), nil
}

func (r *OrderAPIRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	if err := requireID(id); err != nil {
		return model.Order{}, err
	}
	data, err := r.gw.Do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, true)
	if err != nil {
		return model.Order{}, err
	}
	return decodeOrder(data)
}

func (r *OrderAPIRepository) Update(ctx context.Context, id string, in repo.UpdateOrderInput) (model.Order, error) {
	if err := requireID(id); err != nil {
		return model.Order{}, err
	}
	body := updateOrderRequest{
		Notes:      in.Notes,
		PickupTime: formatPickupTime(in.PickupTime),
	}
	data, err := r.gw.Do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id), body, true)
	if err != nil {
		return model.Order{}, err
	}
	return decodeOrder(data)
}

func (r *OrderAPIRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	if err := requireID(id); err != nil {
		return model.Order{}, err
	}
	body := updateOrderStatusRequest{Status: status.String()}
	data, err := r.gw.Do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body, true)
	if err != nil {
		return model.Order{}, err
	}
	return decodeOrder(data)
}

func (r *OrderAPIRepository) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return r.gw.DoNoContent(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, true)
}

func (r *OrderAPIRepository) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	if err := requireID(orderID); err != nil {
		return nil, err
	}
	data, err := r.gw.Do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/items", nil, true)
	if err != nil {
		return nil, err
	}
	return normalize.OrderItems(data), nil
}

func (r *OrderAPIRepository) AddItem(ctx context.Context, orderID string, in repo.OrderItemInput) (model.OrderItem, error) {
	if err := requireID(orderID); err != nil {
		return model.OrderItem{}, err
	}
	body := createOrderItemRequest{
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		Instructions: in.Note,
	}
	data, err := r.gw.Do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/items", body, true)
	if err != nil {
		return model.OrderItem{}, err
	}
	return decodeOrderItem(data)
}

func (r *OrderAPIRepository) UpdateItem(ctx context.Context, orderID string, itemID string, in repo.UpdateOrderItemInput) (model.OrderItem, error) {
	if err := requireID(orderID); err != nil {
		return model.OrderItem{}, err
	}
	if err := requireID(itemID); err != nil {
		return model.OrderItem{}, err
	}
	body := updateOrderItemRequest{
		Quantity:     in.Quantity,
		Instructions: in.Note,
	}
	data, err := r.gw.Do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/items/"+url.PathEscape(itemID), body, true)
	if err != nil {
		return model.OrderItem{}, err
	}
	return decodeOrderItem(data)
}

func (r *OrderAPIRepository) RemoveItem(ctx context.Context, orderID string, itemID string) error {
	if err := requireID(orderID); err != nil {
		return err
	}
	if err := requireID(itemID); err != nil {
		return err
	}
	return r.gw.DoNoContent(ctx, http.MethodDelete, "/orders/"+url.PathEscape(orderID)+"/items/"+url.PathEscape(itemID), nil, true)
}

func decodeOrder(data []byte) (model.Order, error) {
	o, err := normalize.Order(data)
	if err != nil {
		return model.Order{}, gateway.DecodingError(err)
	}
	return o, nil
}

func decodeOrderItem(data []byte) (model.OrderItem, error) {
	it, err := normalize.OrderItem(data)
	if err != nil {
		return model.OrderItem{}, gateway.DecodingError(err)
	}
	return it, nil
}

// pickup_timeはISO8601で送る（未指定なら省略）
func formatPickupTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
