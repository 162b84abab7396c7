package service

import (
	"context"
	"time"

	"github.com/fjod/go_pos/internal/cache"
	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
)

// MockStore implements r.Store for testing
type MockStore struct {
	SavedRecord   *r.CheckoutRecord // captures the record passed to SaveTransaction
	SaveNumericID int64
	SaveErr       error

	Employees           map[int64]*domain.Employee
	EmployeesByUsername map[string]*domain.Employee

	Summaries []domain.TransactionSummary
	ListErr   error

	Detail    *domain.Transaction
	DetailErr error

	DeletedID string
	DeleteErr error

	Products    []domain.Product
	ProductsErr error

	LowRows    []r.LowStockRow
	LowRowsErr error
}

func (m *MockStore) SaveTransaction(_ context.Context, rec *r.CheckoutRecord) (int64, error) {
	m.SavedRecord = rec
	if m.SaveErr != nil {
		return 0, m.SaveErr
	}
	return m.SaveNumericID, nil
}

func (m *MockStore) ListTransactions(_ context.Context, _ r.TransactionFilter) ([]domain.TransactionSummary, error) {
	return m.Summaries, m.ListErr
}

func (m *MockStore) GetTransactionDetail(_ context.Context, _ string) (*domain.Transaction, error) {
	return m.Detail, m.DetailErr
}

func (m *MockStore) DeleteTransaction(_ context.Context, id string) error {
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	return m.Products, m.ProductsErr
}

func (m *MockStore) LowStockRows(_ context.Context, _, _ *time.Time) ([]r.LowStockRow, error) {
	return m.LowRows, m.LowRowsErr
}

func (m *MockStore) GetEmployee(_ context.Context, id int64) (*domain.Employee, error) {
	if emp, ok := m.Employees[id]; ok {
		return emp, nil
	}
	return nil, r.ErrEmployeeNotFound
}

func (m *MockStore) GetEmployeeByUsername(_ context.Context, username string) (*domain.Employee, error) {
	if emp, ok := m.EmployeesByUsername[username]; ok {
		return emp, nil
	}
	return nil, r.ErrEmployeeNotFound
}

func (m *MockStore) RunMigrations(*r.Credentials) error {
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

// MockCatalog implements cache.CatalogCache for testing
type MockCatalog struct {
	Cached        []domain.Product
	SetCalls      int
	Invalidations int
	GetErr        error
	SetErr        error
	InvalidateErr error
}

func (m *MockCatalog) GetProducts(_ context.Context) ([]domain.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Cached == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.Cached, nil
}

func (m *MockCatalog) SetProducts(_ context.Context, products []domain.Product) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Cached = products
	return nil
}

func (m *MockCatalog) InvalidateProducts(_ context.Context) error {
	m.Invalidations++
	if m.InvalidateErr != nil {
		return m.InvalidateErr
	}
	m.Cached = nil
	return nil
}
