package service

import (
	"context"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
)

type ReportsService interface {
	LowStock(ctx context.Context, start, end *time.Time) ([]domain.LowStockItem, error)
}

type ReportsServiceImpl struct {
	repo r.Store
}

func NewReportsService(repo r.Store) *ReportsServiceImpl {
	return &ReportsServiceImpl{repo: repo}
}

// LowStock classifies every product onto the 4-tier scale and keeps only the
// ones at or below the low-stock threshold. Rows arrive pre-sorted by stock
// ascending, then sold-in-range descending.
func (s *ReportsServiceImpl) LowStock(ctx context.Context, start, end *time.Time) ([]domain.LowStockItem, error) {
	rows, err := s.repo.LowStockRows(ctx, start, end)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LowStockItem, 0, len(rows))
	for _, row := range rows {
		if row.CurrentStock > domain.LowStockThreshold {
			continue
		}
		items = append(items, domain.LowStockItem{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Category:     row.Category,
			CurrentStock: row.CurrentStock,
			SoldInRange:  row.SoldInRange,
			Status:       domain.ClassifyStock(row.CurrentStock),
		})
	}
	return items, nil
}
