package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/service"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout service.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutItemDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type CheckoutRequestDTO struct {
	TxnID      string            `json:"txn_id"`
	EmployeeID *int64            `json:"employee_id,omitempty"`
	Items      []CheckoutItemDTO `json:"items"`
	Subtotal   float64           `json:"subtotal,omitempty"`
	Tax        float64           `json:"tax,omitempty"`
	Total      float64           `json:"total,omitempty"`
}

type CheckoutResponseDTO struct {
	Success              bool   `json:"success"`
	TransactionID        string `json:"transaction_id"`
	TransactionNumericID int64  `json:"transaction_numeric_id"`
	Subtotal             string `json:"subtotal"`
	Tax                  string `json:"tax"`
	Total                string `json:"total"`
	EmployeeID           *int64 `json:"employee_id,omitempty"`
	EmployeeName         string `json:"employee_name,omitempty"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	var dto CheckoutRequestDTO
	if err := json.NewDecoder(req.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	// Transaction ids coming from clients are opaque strings; when absent the
	// server generates one rather than trusting any in-process counter.
	txnID := dto.TxnID
	if txnID == "" {
		txnID = "TXN-" + uuid.New().String()
	}

	items := make([]service.CheckoutItem, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = service.CheckoutItem{
			Identifier: it.ID,
			Name:       it.Name,
			Quantity:   it.Qty,
			Price:      it.Price,
		}
	}

	employeeID := dto.EmployeeID
	if employeeID == nil {
		employeeID = getEmployeeIDFromContext(req.Context())
	}

	receipt, err := h.checkout.Checkout(ctx, &service.CheckoutRequest{
		TxnID:      txnID,
		EmployeeID: employeeID,
		Username:   getUsernameFromContext(req.Context()),
		Items:      items,
		Subtotal:   dto.Subtotal,
		Tax:        dto.Tax,
		Total:      dto.Total,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := CheckoutResponseDTO{
		Success:              true,
		TransactionID:        receipt.TxnID,
		TransactionNumericID: receipt.NumericID,
		Subtotal:             formatAmount(receipt.Subtotal),
		Tax:                  formatAmount(receipt.Tax),
		Total:                formatAmount(receipt.Total),
		EmployeeID:           receipt.EmployeeID,
	}
	if receipt.EmployeeName != nil {
		resp.EmployeeName = *receipt.EmployeeName
	}
	respondJSON(w, http.StatusOK, resp)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
