package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/service"
)

type ProductsHandler struct {
	products service.ProductsService
	timeout  time.Duration
}

func NewProductsHandler(products service.ProductsService, timeout time.Duration) *ProductsHandler {
	return &ProductsHandler{
		products: products,
		timeout:  timeout,
	}
}

type ProductDTO struct {
	ID           int64   `json:"id"`
	ProductCode  string  `json:"product_code"`
	ProductName  string  `json:"product_name"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	CategoryCode *string `json:"category_code"`
	CategoryName *string `json:"category_name"`
	DateAdded    string  `json:"date_added"`
}

type ProductsResponseDTO struct {
	Success bool         `json:"success"`
	Data    []ProductDTO `json:"data"`
}

// GET /api/v1/products
func (h *ProductsHandler) List(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{
			ID:           p.ID,
			ProductCode:  p.ProductCode,
			ProductName:  p.Name,
			Price:        p.Price,
			Stock:        p.Stock,
			CategoryCode: p.CategoryCode,
			CategoryName: p.CategoryName,
			DateAdded:    p.DateAdded.Format("2006-01-02 15:04:05"),
		})
	}
	respondJSON(w, http.StatusOK, ProductsResponseDTO{Success: true, Data: dtos})
}
