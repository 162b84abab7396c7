package service

import (
	"context"

	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"go.uber.org/zap"
)

type TransactionsService interface {
	List(ctx context.Context, filter r.TransactionFilter) ([]domain.TransactionSummary, error)
	Detail(ctx context.Context, id string) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type TransactionsServiceImpl struct {
	repo   r.Store
	logger *zap.Logger
}

func NewTransactionsService(repo r.Store, logger *zap.Logger) *TransactionsServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionsServiceImpl{repo: repo, logger: logger}
}

func (s *TransactionsServiceImpl) List(ctx context.Context, filter r.TransactionFilter) ([]domain.TransactionSummary, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *TransactionsServiceImpl) Detail(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.repo.GetTransactionDetail(ctx, id)
}

// Delete removes the transaction and its items. This is a correction/audit
// action: decremented stock is never restored.
func (s *TransactionsServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", zap.String("id", id))
	return nil
}
