package service

import (
	"context"
	"testing"

	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStock(t *testing.T) {
	assert.Equal(t, domain.StockUnavailable, domain.ClassifyStock(0))
	assert.Equal(t, domain.StockCritical, domain.ClassifyStock(1))
	assert.Equal(t, domain.StockCritical, domain.ClassifyStock(15))
	assert.Equal(t, domain.StockCritical, domain.ClassifyStock(20))
	assert.Equal(t, domain.StockLow, domain.ClassifyStock(21))
	assert.Equal(t, domain.StockLow, domain.ClassifyStock(35))
	assert.Equal(t, domain.StockLow, domain.ClassifyStock(40))
	assert.Equal(t, domain.StockAvailable, domain.ClassifyStock(41))
	assert.Equal(t, domain.StockAvailable, domain.ClassifyStock(50))
}

func TestLowStock_FiltersAndClassifies(t *testing.T) {
	mock := &MockStore{
		LowRows: []r.LowStockRow{
			{ProductID: "P001", ProductName: "Coffee", Category: "Drinks", CurrentStock: 0, SoldInRange: 12},
			{ProductID: "P002", ProductName: "Tea", Category: "Drinks", CurrentStock: 15, SoldInRange: 5},
			{ProductID: "P003", ProductName: "Sugar", Category: "Pantry", CurrentStock: 35, SoldInRange: 2},
			{ProductID: "P004", ProductName: "Flour", Category: "Pantry", CurrentStock: 50, SoldInRange: 90},
		},
	}
	svc := NewReportsService(mock)

	items, err := svc.LowStock(context.Background(), nil, nil)
	require.NoError(t, err)

	// stock 50 is healthy and excluded
	require.Len(t, items, 3)
	assert.Equal(t, domain.StockUnavailable, items[0].Status)
	assert.Equal(t, domain.StockCritical, items[1].Status)
	assert.Equal(t, domain.StockLow, items[2].Status)
	assert.Equal(t, 12, items[0].SoldInRange)
}

func TestLowStock_EmptyReport(t *testing.T) {
	mock := &MockStore{
		LowRows: []r.LowStockRow{
			{ProductID: "P004", ProductName: "Flour", CurrentStock: 100},
		},
	}
	svc := NewReportsService(mock)

	items, err := svc.LowStock(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
