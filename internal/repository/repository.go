package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_pos/internal/domain"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction with this txn_id already exists")
	ErrEmployeeNotFound     = errors.New("employee not found")
)

// InsufficientStockError is returned from SaveTransaction when the conditional
// decrement for a cart line matched no product row, either because no
// identifier strategy resolved the product or because the stock was short.
type InsufficientStockError struct {
	Identifier string
	Requested  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock or product not found for identifier %q (needed %d)", e.Identifier, e.Requested)
}

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// CheckoutLine is one validated cart line with its server-computed subtotal.
type CheckoutLine struct {
	Identifier string
	Name       string
	Quantity   int
	Price      float64
	Subtotal   float64
}

// CheckoutRecord is a fully validated checkout ready to be made durable.
type CheckoutRecord struct {
	TxnID      string
	EmployeeID *int64
	Subtotal   float64
	Tax        float64
	Total      float64
	Lines      []CheckoutLine
}

type TransactionFilter struct {
	Date       *time.Time // matches the calendar date of date_time
	EmployeeID *int64
}

// LowStockRow is the raw report row; tier classification happens in the
// service layer so it stays testable without a database.
type LowStockRow struct {
	ProductID    string
	ProductName  string
	Category     string
	CurrentStock int
	SoldInRange  int
}

type Store interface {
	// SaveTransaction atomically inserts the header and item rows and applies
	// the conditional stock decrements. Returns the storage-generated numeric
	// key, or ErrDuplicateTransaction / *InsufficientStockError; on any error
	// nothing is persisted.
	SaveTransaction(ctx context.Context, rec *CheckoutRecord) (int64, error)

	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.TransactionSummary, error)
	// GetTransactionDetail resolves id as a txn_id first, then as the numeric
	// primary key when id is purely numeric.
	GetTransactionDetail(ctx context.Context, id string) (*domain.Transaction, error)
	// DeleteTransaction removes the items and then the header in one
	// transaction. It never restores decremented stock.
	DeleteTransaction(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	LowStockRows(ctx context.Context, start, end *time.Time) ([]LowStockRow, error)

	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	GetEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error)

	RunMigrations(*Credentials) error
	Close() error
}
