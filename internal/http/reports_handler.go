package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/service"
)

type ReportsHandler struct {
	reports service.ReportsService
	timeout time.Duration
}

func NewReportsHandler(reports service.ReportsService, timeout time.Duration) *ReportsHandler {
	return &ReportsHandler{
		reports: reports,
		timeout: timeout,
	}
}

type LowStockItemDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	SoldInRange  int    `json:"sold_in_range"`
	Status       string `json:"status"`
}

type LowStockMetaDTO struct {
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Returned int    `json:"returned"`
}

type LowStockResponseDTO struct {
	Success bool              `json:"success"`
	Meta    LowStockMetaDTO   `json:"meta"`
	Items   []LowStockItemDTO `json:"items"`
}

// GET /api/v1/reports/low-stock?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportsHandler) LowStock(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	rawStart := req.URL.Query().Get("start")
	rawEnd := req.URL.Query().Get("end")

	// The sold-in-range join only applies when both bounds are present,
	// matching the report's original behavior.
	var start, end *time.Time
	if rawStart != "" && rawEnd != "" {
		s, err := time.Parse("2006-01-02", rawStart)
		if err != nil {
			respondError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		e, err := time.Parse("2006-01-02", rawEnd)
		if err != nil {
			respondError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		endOfDay := e.Add(24*time.Hour - time.Second)
		start, end = &s, &endOfDay
	}

	items, err := h.reports.LowStock(ctx, start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]LowStockItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, convertLowStockItem(item))
	}
	respondJSON(w, http.StatusOK, LowStockResponseDTO{
		Success: true,
		Meta:    LowStockMetaDTO{Start: rawStart, End: rawEnd, Returned: len(dtos)},
		Items:   dtos,
	})
}

func convertLowStockItem(item domain.LowStockItem) LowStockItemDTO {
	return LowStockItemDTO{
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		Category:     item.Category,
		CurrentStock: item.CurrentStock,
		SoldInRange:  item.SoldInRange,
		Status:       string(item.Status),
	}
}
