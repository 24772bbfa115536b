package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// /products のAPI
type ProductHandler struct {
	store *Store
}

// DI
func NewProductHandler(store *Store) *ProductHandler {
	return &ProductHandler{store: store}
}

type productRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	IsAvailable   *bool   `json:"is_available"`
	StockQuantity *int    `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
}

func (h *ProductHandler) List(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid page"))
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid limit"))
		}
		limit = l
	}

	category := c.QueryParam("category")
	search := strings.ToLower(c.QueryParam("search"))

	var available *bool
	if v := c.QueryParam("is_available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(c, "invalid is_available"))
		}
		available = &b
	}

	filtered := make([]productRecord, 0)
	for _, p := range h.store.ListProducts() {
		if category != "" && p.Category != category {
			continue
		}
		if available != nil && p.IsAvailable != *available {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	//ページング
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	out := make([]map[string]interface{}, 0, end-start)
	for _, p := range filtered[start:end] {
		out = append(out, productJSON(p))
	}
	return respondList(c, http.StatusOK, "products", out)
}

func (h *ProductHandler) Categories(c echo.Context) error {
	seen := map[string]bool{}
	cats := []string{}
	for _, p := range h.store.ListProducts() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return respondList(c, http.StatusOK, "categories", cats)
}

func (h *ProductHandler) Detail(c echo.Context) error {
	p, ok := h.store.FindProduct(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "product not found"))
	}
	return respondOne(c, http.StatusOK, "product", productJSON(p))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return c.JSON(http.StatusBadRequest, errorBody(c, "name and non-negative price are required"))
	}

	rec := productRecord{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: true,
		ImageURL:    req.ImageURL,
	}
	if req.IsAvailable != nil {
		rec.IsAvailable = *req.IsAvailable
	}
	if req.StockQuantity != nil {
		rec.StockQuantity = *req.StockQuantity
	}

	p := h.store.PutProduct(rec)
	return respondOne(c, http.StatusCreated, "product", productJSON(p))
}

func (h *ProductHandler) Update(c echo.Context) error {
	p, ok := h.store.FindProduct(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(c, "product not found"))
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(c, "invalid body"))
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
	}

	p = h.store.PutProduct(p)
	return respondOne(c, http.StatusOK, "product", productJSON(p))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if !h.store.DeleteProduct(c.Param("id")) {
		return c.JSON(http.StatusNotFound, errorBody(c, "product not found"))
	}
	return c.NoContent(http.StatusNoContent)
}

func productJSON(p productRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":             p.ID,
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"category":       p.Category,
		"is_available":   p.IsAvailable,
		"stock_quantity": p.StockQuantity,
		"image_url":      p.ImageURL,
		"created_at":     p.CreatedAt.Format(time.RFC3339),
		"updated_at":     p.UpdatedAt.Format(time.RFC3339),
	}
}
