package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"github.com/fjod/go_pos/internal/service"
	"github.com/go-chi/chi/v5"
)

type TransactionsHandler struct {
	transactions service.TransactionsService
	timeout      time.Duration
}

func NewTransactionsHandler(transactions service.TransactionsService, timeout time.Duration) *TransactionsHandler {
	return &TransactionsHandler{
		transactions: transactions,
		timeout:      timeout,
	}
}

type TransactionSummaryDTO struct {
	TransactionID   string  `json:"transaction_id"`
	TransactionDate string  `json:"transaction_date"`
	TotalAmount     float64 `json:"total_amount"`
	EmployeeName    *string `json:"employee_name"`
}

type TransactionsListResponseDTO struct {
	Success      bool                    `json:"success"`
	Transactions []TransactionSummaryDTO `json:"transactions"`
}

type TransactionItemDTO struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type TransactionDetailDTO struct {
	TransactionID   string  `json:"transaction_id"`
	TransactionDate string  `json:"transaction_date"`
	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	EmployeeID      *int64  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name"`
}

type TransactionDetailResponseDTO struct {
	Success     bool                 `json:"success"`
	Transaction TransactionDetailDTO `json:"transaction"`
	Items       []TransactionItemDTO `json:"items"`
}

// GET /api/v1/transactions?date=YYYY-MM-DD&employee=N
func (h *TransactionsHandler) List(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	var filter r.TransactionFilter
	if raw := req.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}
	if raw := req.URL.Query().Get("employee"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "employee must be a positive integer")
			return
		}
		filter.EmployeeID = &id
	}

	summaries, err := h.transactions.List(ctx, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]TransactionSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, TransactionSummaryDTO{
			TransactionID:   s.TxnID,
			TransactionDate: s.DateTime.Format("2006-01-02 15:04:05"),
			TotalAmount:     s.TotalAmount,
			EmployeeName:    s.EmployeeName,
		})
	}
	respondJSON(w, http.StatusOK, TransactionsListResponseDTO{Success: true, Transactions: dtos})
}

// GET /api/v1/transactions/{id} — accepts the opaque txn id or the numeric key
func (h *TransactionsHandler) Detail(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(req, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing id")
		return
	}

	t, err := h.transactions.Detail(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, TransactionDetailResponseDTO{
		Success:     true,
		Transaction: convertTransaction(t),
		Items:       convertItems(t.Items),
	})
}

// DELETE /api/v1/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(req, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing id")
		return
	}

	if err := h.transactions.Delete(ctx, id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func convertTransaction(t *domain.Transaction) TransactionDetailDTO {
	return TransactionDetailDTO{
		TransactionID:   t.TxnID,
		TransactionDate: t.DateTime.Format("2006-01-02 15:04:05"),
		Subtotal:        t.Subtotal,
		Tax:             t.Tax,
		Total:           t.Total,
		EmployeeID:      t.EmployeeID,
		EmployeeName:    t.EmployeeName,
	}
}

func convertItems(items []domain.TransactionItem) []TransactionItemDTO {
	dtos := make([]TransactionItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, TransactionItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return dtos
}
