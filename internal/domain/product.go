package domain

import "time"

type Product struct {
	ID           int64
	ProductCode  string
	ExternalRef  *string
	Name         string
	Price        float64
	Stock        int
	CategoryID   *int64
	CategoryCode *string
	CategoryName *string
	DateAdded    time.Time
}

type Employee struct {
	ID       int64
	Username string
	FullName string
}

type StockStatus string

const (
	StockUnavailable StockStatus = "Unavailable"
	StockCritical    StockStatus = "Critical"
	StockLow         StockStatus = "Low"
	StockAvailable   StockStatus = "Available"
)

// LowStockThreshold is the cutoff above which a product is considered healthy
// and excluded from the low-stock report.
const LowStockThreshold = 40

// ClassifyStock maps an absolute stock count onto the fixed 4-tier scale:
// 0 is Unavailable, 1..20 Critical, 21..40 Low, above 40 Available.
func ClassifyStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockUnavailable
	case stock <= 20:
		return StockCritical
	case stock <= LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

type LowStockItem struct {
	ProductID    string
	ProductName  string
	Category     string
	CurrentStock int
	SoldInRange  int
	Status       StockStatus
}
