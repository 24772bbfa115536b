package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// /users のAPI
type UserHandler struct {
	store *Store
}

// DI
func NewUserHandler(store *Store) *UserHandler {
	return &UserHandler{store: store}
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, _ := c.Get(ctxUserIDKey).(string)
	u, ok := h.store.FindUserByID(userID)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "user not found"))
	}
	return respondOne(c, http.StatusOK, "user", userJSON(u))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	userID, _ := c.Get(ctxUserIDKey).(string)
	u, ok := h.store.UpdateUser(userID, func(u *userRecord) {
		if req.FullName != "" {
			u.Name = req.FullName
		}
		if req.Phone != "" {
			u.Phone = req.Phone
		}
	})
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "user not found"))
	}
	return respondOne(c, http.StatusOK, "user", userJSON(u))
}

func (h *UserHandler) List(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid page"))
		}
		page = p
	}
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid limit"))
		}
		limit = l
	}
	role := c.QueryParam("role")
	search := strings.ToLower(c.QueryParam("search"))

	filtered := make([]userRecord, 0)
	for _, u := range h.store.ListUsers() {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		filtered = append(filtered, u)
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
	for _, u := range filtered[start:end] {
		out = append(out, userJSON(u))
	}
	return respondList(c, http.StatusOK, "users", out)
}
