package normalize

import (
	"encoding/json"
	"errors"

	"github.com/bryantlimm/setaside-go/internal/domain/model"
	"github.com/google/uuid"
)

// ErrUndecodable means no decode strategy produced a record at all.
// 部分的に壊れたレコードはここには来ない（欠落フィールドで埋めて返す）。
var ErrUndecodable = errors.New("no decodable record in response")

// ---- 商品 ----

type rawProduct struct {
	ID            flexString `json:"id"`
	Name          flexString `json:"name"`
	Description   flexString `json:"description"`
	Price         flexFloat  `json:"price"`
	Category      flexString `json:"category"`
	IsAvailable   flexBool   `json:"is_available"`
	StockQuantity flexInt    `json:"stock_quantity"`
	ImageURL      flexString `json:"image_url"`
	CreatedAt     flexString `json:"created_at"`
	UpdatedAt     flexString `json:"updated_at"`
}

func decodeProduct(data []byte) (model.Product, bool) {
	var r rawProduct
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Product{}, false
	}
	// idもnameも無いものは商品とみなさない（ラッパー誤認防止）
	if !r.ID.ok && !r.Name.ok {
		return model.Product{}, false
	}
	p := model.Product{
		ID:            r.ID.val,
		Name:          r.Name.val,
		Description:   r.Description.val,
		Price:         r.Price.val,
		Category:      r.Category.val,
		IsAvailable:   r.IsAvailable.ptr(),
		StockQuantity: r.StockQuantity.ptr(),
		ImageURL:      r.ImageURL.val,
		CreatedAt:     r.CreatedAt.val,
		UpdatedAt:     r.UpdatedAt.val,
	}
	if p.ID == "" {
		// idは必須。無ければ生成して表示は継続する。
		p.ID = uuid.NewString()
	}
	if p.Price < 0 {
		p.Price = 0
	}
	return p, true
}

// Product decodes a single-product payload.
// 直デコード→ラッパーキーの順に試し、全部外れたらErrUndecodable。
func Product(data []byte) (model.Product, error) {
	for _, body := range singleCandidates(data, "product") {
		if p, ok := decodeProduct(body); ok {
			return p, nil
		}
	}
	return model.Product{}, ErrUndecodable
}

// Products decodes a product-list payload. 何も見つからなければ空。
func Products(data []byte) []model.Product {
	elems := listElements(data, "products")
	out := make([]model.Product, 0, len(elems))
	for _, e := range elems {
		if p, ok := decodeProduct(e); ok {
			out = append(out, p)
		}
	}
	return out
}

// Categories decodes either a bare string array or a wrapped one.
func Categories(data []byte) []string {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct
	}
	var wrapped struct {
		Categories []string `json:"categories"`
		Data       []string `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Categories != nil {
			return wrapped.Categories
		}
		if wrapped.Data != nil {
			return wrapped.Data
		}
	}
	return []string{}
}

// ---- 注文 ----

type rawOrderItem struct {
	ID           flexString      `json:"id"`
	OrderID      flexString      `json:"order_id"`
	ProductID    flexString      `json:"product_id"`
	Quantity     flexInt         `json:"quantity"`
	UnitPrice    flexFloat       `json:"unit_price"`
	Subtotal     flexFloat       `json:"subtotal"`
	Instructions flexString      `json:"special_instructions"`
	Product      json.RawMessage `json:"product"`
}

func decodeOrderItem(data []byte) (model.OrderItem, bool) {
	var r rawOrderItem
	if err := json.Unmarshal(data, &r); err != nil {
		return model.OrderItem{}, false
	}
	if !r.ID.ok && !r.ProductID.ok {
		return model.OrderItem{}, false
	}
	it := model.OrderItem{
		ID:        r.ID.val,
		OrderID:   r.OrderID.val,
		ProductID: r.ProductID.val,
		Quantity:  r.Quantity.val,
		UnitPrice: r.UnitPrice.ptr(),
		Subtotal:  r.Subtotal.ptr(),
		Note:      r.Instructions.val,
	}
	if it.ID == "" {
		// サーバーがidを省く応答がある。合成idは再取得で変わる点に注意。
		it.ID = uuid.NewString()
	}
	// 埋め込み商品が壊れていても明細自体は生かす
	if len(r.Product) > 0 {
		if p, ok := decodeProduct(r.Product); ok {
			it.Product = &p
		}
	}
	return it, true
}

type rawOrder struct {
	ID          flexString        `json:"id"`
	CustomerID  flexString        `json:"customer_id"`
	Status      flexString        `json:"status"`
	Notes       flexString        `json:"notes"`
	PickupTime  flexString        `json:"pickup_time"`
	TotalAmount flexFloat         `json:"total_amount"`
	Items       []json.RawMessage `json:"items"`
	Customer    json.RawMessage   `json:"customer"`
	CreatedAt   flexString        `json:"created_at"`
	UpdatedAt   flexString        `json:"updated_at"`
}

func decodeOrder(data []byte) (model.Order, bool) {
	var r rawOrder
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Order{}, false
	}
	if !r.ID.ok && !r.Status.ok {
		return model.Order{}, false
	}
	o := model.Order{
		ID:          r.ID.val,
		CustomerID:  r.CustomerID.val,
		Notes:       r.Notes.val,
		PickupTime:  r.PickupTime.val,
		TotalAmount: r.TotalAmount.ptr(),
		CreatedAt:   r.CreatedAt.val,
		UpdatedAt:   r.UpdatedAt.val,
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	// statusは必須。不明値・欠落はpendingに倒して表示を続ける。
	if st, ok := model.ParseOrderStatus(r.Status.val); ok {
		o.Status = st
	} else {
		o.Status = model.OrderStatusPending
	}
	for _, raw := range r.Items {
		if it, ok := decodeOrderItem(raw); ok {
			out := it
			if out.OrderID == "" {
				out.OrderID = o.ID
			}
			o.Items = append(o.Items, out)
		}
	}
	if len(r.Customer) > 0 {
		if u, ok := decodeUser(r.Customer); ok {
			o.Customer = &u
		}
	}
	return o, true
}

func Order(data []byte) (model.Order, error) {
	for _, body := range singleCandidates(data, "order") {
		if o, ok := decodeOrder(body); ok {
			return o, nil
		}
	}
	return model.Order{}, ErrUndecodable
}

func Orders(data []byte) []model.Order {
	elems := listElements(data, "orders")
	out := make([]model.Order, 0, len(elems))
	for _, e := range elems {
		if o, ok := decodeOrder(e); ok {
			out = append(out, o)
		}
	}
	return out
}

func OrderItem(data []byte) (model.OrderItem, error) {
	for _, body := range singleCandidates(data, "item") {
		if it, ok := decodeOrderItem(body); ok {
			return it, nil
		}
	}
	return model.OrderItem{}, ErrUndecodable
}

func OrderItems(data []byte) []model.OrderItem {
	elems := listElements(data, "order_items")
	out := make([]model.OrderItem, 0, len(elems))
	for _, e := range elems {
		if it, ok := decodeOrderItem(e); ok {
			out = append(out, it)
		}
	}
	return out
}

// ---- ユーザー ----

type rawUser struct {
	ID        flexString `json:"id"`
	Email     flexString `json:"email"`
	FullName  flexString `json:"full_name"`
	Phone     flexString `json:"phone"`
	Role      flexString `json:"role"`
	CreatedAt flexString `json:"created_at"`
	UpdatedAt flexString `json:"updated_at"`
}

func decodeUser(data []byte) (model.User, bool) {
	var r rawUser
	if err := json.Unmarshal(data, &r); err != nil {
		return model.User{}, false
	}
	if !r.ID.ok && !r.Email.ok {
		return model.User{}, false
	}
	u := model.User{
		ID:        r.ID.val,
		Email:     r.Email.val,
		FullName:  r.FullName.val,
		Phone:     r.Phone.val,
		Role:      model.Role(r.Role.val),
		CreatedAt: r.CreatedAt.val,
		UpdatedAt: r.UpdatedAt.val,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = model.RoleCustomer
	}
	return u, true
}

func User(data []byte) (model.User, error) {
	for _, body := range singleCandidates(data, "user") {
		if u, ok := decodeUser(body); ok {
			return u, nil
		}
	}
	return model.User{}, ErrUndecodable
}

func Users(data []byte) []model.User {
	elems := listElements(data, "users")
	out := make([]model.User, 0, len(elems))
	for _, e := range elems {
		if u, ok := decodeUser(e); ok {
			out = append(out, u)
		}
	}
	return out
}

// ---- 認証 ----

// AuthSession is the decoded login/register response.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	User         *model.User
}

type rawAuth struct {
	AccessToken  flexString      `json:"access_token"`
	RefreshToken flexString      `json:"refresh_token"`
	TokenType    flexString      `json:"token_type"`
	User         json.RawMessage `json:"user"`
}

func decodeAuth(data []byte) (AuthSession, bool) {
	var r rawAuth
	if err := json.Unmarshal(data, &r); err != nil {
		return AuthSession{}, false
	}
	if !r.AccessToken.ok || r.AccessToken.val == "" {
		return AuthSession{}, false
	}
	s := AuthSession{
		AccessToken:  r.AccessToken.val,
		RefreshToken: r.RefreshToken.val,
		TokenType:    r.TokenType.val,
	}
	if len(r.User) > 0 {
		if u, ok := decodeUser(r.User); ok {
			s.User = &u
		}
	}
	return s, true
}

func Auth(data []byte) (AuthSession, error) {
	for _, body := range singleCandidates(data, "token") {
		if s, ok := decodeAuth(body); ok {
			return s, nil
		}
	}
	return AuthSession{}, ErrUndecodable
}
