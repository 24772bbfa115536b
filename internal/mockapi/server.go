// Package mockapi is an in-memory pickup-ordering backend used by the
// command line demo and the e2e tests. It speaks the same HTTP surface
// the real service does, including its uneven response envelopes.
package mockapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// BasePath is the versioned prefix every route lives under.
const BasePath = "/api/v1"

type Server struct {
	Echo  *echo.Echo
	Store *Store
}

// Newはルーティング込みのechoを組み立てる。
func New(jwtSecret string, bcryptCost int) *Server {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	store := NewStore()
	issuer := &tokenIssuer{secret: []byte(jwtSecret)}

	authH := NewAuthHandler(store, issuer, bcryptCost)
	productH := NewProductHandler(store)
	orderH := NewOrderHandler(store)
	userH := NewUserHandler(store)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	//実サービスと同じくバージョン付きベースパスの下に生やす
	v1 := e.Group(BasePath)

	//認証不要
	v1.POST("/auth/register", authH.Register)
	v1.POST("/auth/login", authH.Login)
	v1.GET("/products", productH.List)
	v1.GET("/products/categories", productH.Categories)
	v1.GET("/products/:id", productH.Detail)

	//認証必須
	auth := authJWT([]byte(jwtSecret))
	v1.GET("/auth/me", authH.Me, auth)

	v1.POST("/orders", orderH.Create, auth)
	v1.GET("/orders", orderH.List, auth)
	v1.GET("/orders/:id", orderH.Detail, auth)
	v1.PATCH("/orders/:id", orderH.Update, auth)
	v1.DELETE("/orders/:id", orderH.Delete, auth)
	v1.GET("/orders/:id/items", orderH.ListItems, auth)
	v1.POST("/orders/:id/items", orderH.AddItem, auth)
	v1.PATCH("/orders/:id/items/:itemID", orderH.UpdateItem, auth)
	v1.DELETE("/orders/:id/items/:itemID", orderH.RemoveItem, auth)

	v1.GET("/users/me", userH.Me, auth)
	v1.PATCH("/users/me", userH.UpdateMe, auth)

	//staffのみ
	v1.PATCH("/orders/:id/status", orderH.UpdateStatus, auth, staffOnly)
	v1.GET("/users", userH.List, auth, staffOnly)
	v1.POST("/products", productH.Create, auth, staffOnly)
	v1.PATCH("/products/:id", productH.Update, auth, staffOnly)
	v1.DELETE("/products/:id", productH.Delete, auth, staffOnly)

	return &Server{Echo: e, Store: store}
}

// SeedStaffはstaffユーザーを直接登録する（デモとテスト用）。
func (s *Server) SeedStaff(email, password, name string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	u, _ := s.Store.CreateUser(userRecord{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         "staff",
	})
	return u.ID, nil
}

// SeedProductは商品を直接登録する（デモとテスト用）。
func (s *Server) SeedProduct(name, category string, price float64) string {
	p := s.Store.PutProduct(productRecord{
		Name:        name,
		Category:    category,
		Price:       price,
		IsAvailable: true,
	})
	return p.ID
}

func (s *Server) Start(addr string) error {
	return s.Echo.Start(addr)
}
