package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// /auth のAPI
type AuthHandler struct {
	store  *Store
	issuer *tokenIssuer
	cost   int
}

// DI
func NewAuthHandler(store *Store, issuer *tokenIssuer, bcryptCost int) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer, cost: bcryptCost}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return c.JSON(http.StatusBadRequest, errorBody(c, "email, password and name are required"))
	}

	//bcryptでハッシュ化して保存
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(c, "hash failed"))
	}

	u, ok := h.store.CreateUser(userRecord{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.FullName,
		Phone:        req.Phone,
	})
	if !ok {
		return c.JSON(http.StatusConflict, errorBody(c, "email already registered"))
	}

	return h.respondTokens(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	u, ok := h.store.FindUserByEmail(strings.TrimSpace(req.Email))
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody(c, "invalid credentials"))
	}

	//bcryptで照合
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, errorBody(c, "invalid credentials"))
	}

	return h.respondTokens(c, http.StatusOK, u)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(ctxUserIDKey).(string)
	u, ok := h.store.FindUserByID(userID)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "user not found"))
	}
	return respondOne(c, http.StatusOK, "user", userJSON(u))
}

func (h *AuthHandler) respondTokens(c echo.Context, status int, u userRecord) error {
	token, err := h.issuer.Issue(u.ID, u.Role, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody(c, "token issue failed"))
	}

	return respondOne(c, status, "token", map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userJSON(u),
	})
}

func userJSON(u userRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"full_name":  u.Name,
		"phone":      u.Phone,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}
