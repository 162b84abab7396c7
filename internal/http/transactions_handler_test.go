package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TransactionsServiceMock struct {
	summaries []domain.TransactionSummary
	detail    *domain.Transaction
	err       error

	filter    r.TransactionFilter
	deletedID string
}

func (m *TransactionsServiceMock) List(_ context.Context, filter r.TransactionFilter) ([]domain.TransactionSummary, error) {
	m.filter = filter
	return m.summaries, m.err
}

func (m *TransactionsServiceMock) Detail(_ context.Context, _ string) (*domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func (m *TransactionsServiceMock) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.err
}

func transactionsRouter(handler *TransactionsHandler) chi.Router {
	router := chi.NewRouter()
	router.Get("/api/v1/transactions", handler.List)
	router.Get("/api/v1/transactions/{id}", handler.Detail)
	router.Delete("/api/v1/transactions/{id}", handler.Delete)
	return router
}

func TestTransactionsList_Success(t *testing.T) {
	cashier := "Jane"
	mock := &TransactionsServiceMock{
		summaries: []domain.TransactionSummary{
			{
				TxnID:        "TXN-2",
				DateTime:     time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
				TotalAmount:  280,
				EmployeeName: &cashier,
			},
			{
				TxnID:       "TXN-1",
				DateTime:    time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
				TotalAmount: 50,
			},
		},
	}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/transactions", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp TransactionsListResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "TXN-2", resp.Transactions[0].TransactionID)
	assert.Equal(t, "2026-03-14 15:09:26", resp.Transactions[0].TransactionDate)
	require.NotNil(t, resp.Transactions[0].EmployeeName)
	assert.Equal(t, "Jane", *resp.Transactions[0].EmployeeName)
	assert.Nil(t, resp.Transactions[1].EmployeeName)
}

func TestTransactionsList_Filters(t *testing.T) {
	mock := &TransactionsServiceMock{}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/transactions?date=2026-03-14&employee=7", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, mock.filter.Date)
	assert.Equal(t, "2026-03-14", mock.filter.Date.Format("2006-01-02"))
	require.NotNil(t, mock.filter.EmployeeID)
	assert.Equal(t, int64(7), *mock.filter.EmployeeID)
}

func TestTransactionsList_BadFilterValues(t *testing.T) {
	handler := NewTransactionsHandler(&TransactionsServiceMock{}, 5*time.Second)
	router := transactionsRouter(handler)

	for _, target := range []string{
		"/api/v1/transactions?date=14-03-2026",
		"/api/v1/transactions?employee=abc",
		"/api/v1/transactions?employee=-1",
	} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}

func TestTransactionsDetail_Success(t *testing.T) {
	employeeID := int64(3)
	name := "Jane"
	mock := &TransactionsServiceMock{
		detail: &domain.Transaction{
			TxnID:        "TXN-1",
			DateTime:     time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
			Subtotal:     250,
			Tax:          30,
			Total:        280,
			EmployeeID:   &employeeID,
			EmployeeName: &name,
			Items: []domain.TransactionItem{
				{ProductID: "P001", ProductName: "Laptop", Quantity: 2, Price: 100, Subtotal: 200},
				{ProductID: "P002", ProductName: "Mouse", Quantity: 1, Price: 50, Subtotal: 50},
			},
		},
	}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/transactions/TXN-1", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp TransactionDetailResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "TXN-1", resp.Transaction.TransactionID)
	assert.Equal(t, 280.0, resp.Transaction.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Laptop", resp.Items[0].ProductName)
	assert.Equal(t, 200.0, resp.Items[0].Subtotal)
}

func TestTransactionsDetail_NotFound(t *testing.T) {
	mock := &TransactionsServiceMock{err: r.ErrTransactionNotFound}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/transactions/TXN-missing", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Transaction not found", resp.Message)
}

func TestTransactionsDelete(t *testing.T) {
	mock := &TransactionsServiceMock{}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/api/v1/transactions/TXN-1", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "TXN-1", mock.deletedID)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
}

func TestTransactionsDelete_NotFound(t *testing.T) {
	mock := &TransactionsServiceMock{err: r.ErrTransactionNotFound}
	handler := NewTransactionsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/api/v1/transactions/TXN-missing", nil)
	transactionsRouter(handler).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
