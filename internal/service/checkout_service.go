package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/fjod/go_pos/internal/cache"
	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"go.uber.org/zap"
)

type CheckoutItem struct {
	Identifier string
	Name       string
	Quantity   int
	Price      float64
}

type CheckoutRequest struct {
	TxnID      string
	EmployeeID *int64
	Username   string // caller identity, used when EmployeeID is absent
	Items      []CheckoutItem

	// Client-declared totals. Subtotal and total are untrusted hints and are
	// always recomputed server-side; a positive declared tax overrides the
	// flat rate.
	Subtotal float64
	Tax      float64
	Total    float64
}

type CheckoutService interface {
	Checkout(ctx context.Context, request *CheckoutRequest) (*domain.Receipt, error)
}

type CheckoutServiceImpl struct {
	repo    r.Store
	catalog cache.CatalogCache
	logger  *zap.Logger
}

func NewCheckoutService(repo r.Store, catalog cache.CatalogCache, logger *zap.Logger) *CheckoutServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutServiceImpl{repo: repo, catalog: catalog, logger: logger}
}

func (s *CheckoutServiceImpl) Checkout(ctx context.Context, request *CheckoutRequest) (*domain.Receipt, error) {
	if err := validateCheckout(request); err != nil {
		return nil, err
	}

	var subtotal float64
	lines := make([]r.CheckoutLine, len(request.Items))
	for i, item := range request.Items {
		lineSubtotal := round2(float64(item.Quantity) * item.Price)
		subtotal += lineSubtotal
		lines[i] = r.CheckoutLine{
			Identifier: item.Identifier,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Subtotal:   lineSubtotal,
		}
	}
	subtotal = round2(subtotal)

	tax := request.Tax
	if tax <= 0 {
		tax = round2(subtotal * domain.TaxRate)
	}
	total := round2(subtotal + tax)

	if request.Subtotal > 0 && request.Subtotal != subtotal {
		s.logger.Warn("client-declared subtotal disagrees with computed value, using computed",
			zap.String("txn_id", request.TxnID),
			zap.Float64("declared", request.Subtotal),
			zap.Float64("computed", subtotal))
	}
	if request.Total > 0 && request.Total != total {
		s.logger.Warn("client-declared total disagrees with computed value, using computed",
			zap.String("txn_id", request.TxnID),
			zap.Float64("declared", request.Total),
			zap.Float64("computed", total))
	}

	employeeID, employeeName, err := s.resolveEmployee(ctx, request)
	if err != nil {
		return nil, err
	}

	numericID, err := s.repo.SaveTransaction(ctx, &r.CheckoutRecord{
		TxnID:      request.TxnID,
		EmployeeID: employeeID,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Lines:      lines,
	})
	if err != nil {
		return nil, err
	}

	// Stock moved, so the cached catalog is stale. Cache failures do not fail
	// a committed checkout.
	if s.catalog != nil {
		if cacheErr := s.catalog.InvalidateProducts(ctx); cacheErr != nil {
			s.logger.Warn("failed to invalidate product cache after checkout", zap.Error(cacheErr))
		}
	}

	return &domain.Receipt{
		TxnID:        request.TxnID,
		NumericID:    numericID,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
	}, nil
}

// resolveEmployee prefers the explicitly supplied employee id, falling back to
// the caller's username. A sale with no resolvable owner is still recorded.
func (s *CheckoutServiceImpl) resolveEmployee(ctx context.Context, request *CheckoutRequest) (*int64, *string, error) {
	if request.EmployeeID != nil {
		emp, err := s.repo.GetEmployee(ctx, *request.EmployeeID)
		if errors.Is(err, r.ErrEmployeeNotFound) {
			s.logger.Warn("supplied employee id does not exist, recording without owner",
				zap.Int64("employee_id", *request.EmployeeID))
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve employee by id: %w", err)
		}
		return &emp.ID, &emp.FullName, nil
	}

	if request.Username != "" {
		emp, err := s.repo.GetEmployeeByUsername(ctx, request.Username)
		if errors.Is(err, r.ErrEmployeeNotFound) {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve employee by username: %w", err)
		}
		return &emp.ID, &emp.FullName, nil
	}

	return nil, nil, nil
}

func validateCheckout(request *CheckoutRequest) error {
	if request.TxnID == "" {
		return invalidf("txn_id is required")
	}
	if len(request.Items) == 0 {
		return invalidf("cart is empty, nothing to checkout")
	}
	for _, item := range request.Items {
		if item.Identifier == "" {
			return invalidf("item is missing a product identifier")
		}
		if item.Quantity <= 0 {
			return invalidf("invalid quantity %d for product %q", item.Quantity, item.Identifier)
		}
		if item.Price < 0 {
			return invalidf("negative price for product %q", item.Identifier)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
