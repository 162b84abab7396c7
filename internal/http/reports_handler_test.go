package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ReportsServiceMock struct {
	items []domain.LowStockItem
	err   error

	start *time.Time
	end   *time.Time
}

func (m *ReportsServiceMock) LowStock(_ context.Context, start, end *time.Time) ([]domain.LowStockItem, error) {
	m.start, m.end = start, end
	return m.items, m.err
}

func TestLowStock_Success(t *testing.T) {
	mock := &ReportsServiceMock{
		items: []domain.LowStockItem{
			{ProductID: "P001", ProductName: "Coffee", Category: "Drinks", CurrentStock: 0, SoldInRange: 12, Status: domain.StockUnavailable},
			{ProductID: "P002", ProductName: "Tea", Category: "Drinks", CurrentStock: 15, SoldInRange: 5, Status: domain.StockCritical},
		},
	}
	handler := NewReportsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/reports/low-stock", nil)
	handler.LowStock(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp LowStockResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Meta.Returned)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Unavailable", resp.Items[0].Status)
	assert.Equal(t, "Critical", resp.Items[1].Status)

	assert.Nil(t, mock.start)
	assert.Nil(t, mock.end)
}

func TestLowStock_RangeInclusiveOfEndDay(t *testing.T) {
	mock := &ReportsServiceMock{}
	handler := NewReportsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/reports/low-stock?start=2026-03-01&end=2026-03-14", nil)
	handler.LowStock(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, mock.start)
	require.NotNil(t, mock.end)
	assert.Equal(t, "2026-03-01 00:00:00", mock.start.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2026-03-14 23:59:59", mock.end.Format("2006-01-02 15:04:05"))
}

func TestLowStock_LoneBoundIsIgnored(t *testing.T) {
	mock := &ReportsServiceMock{}
	handler := NewReportsHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/reports/low-stock?start=2026-03-01", nil)
	handler.LowStock(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, mock.start)
	assert.Nil(t, mock.end)
}

func TestLowStock_BadDates(t *testing.T) {
	handler := NewReportsHandler(&ReportsServiceMock{}, 5*time.Second)

	for _, target := range []string{
		"/api/v1/reports/low-stock?start=01-03-2026&end=2026-03-14",
		"/api/v1/reports/low-stock?start=2026-03-01&end=tomorrow",
	} {
		recorder := httptest.NewRecorder()
		handler.LowStock(recorder, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}
