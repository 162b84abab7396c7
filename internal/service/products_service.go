package service

import (
	"context"
	"errors"

	"github.com/fjod/go_pos/internal/cache"
	"github.com/fjod/go_pos/internal/domain"
	r "github.com/fjod/go_pos/internal/repository"
	"go.uber.org/zap"
)

type ProductsService interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// ProductsServiceImpl serves the POS product listing through a read-through
// cache; the checkout path invalidates it when stock moves.
type ProductsServiceImpl struct {
	repo    r.Store
	catalog cache.CatalogCache
	logger  *zap.Logger
}

func NewProductsService(repo r.Store, catalog cache.CatalogCache, logger *zap.Logger) *ProductsServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductsServiceImpl{repo: repo, catalog: catalog, logger: logger}
}

func (s *ProductsServiceImpl) List(ctx context.Context) ([]domain.Product, error) {
	if s.catalog != nil {
		cached, err := s.catalog.GetProducts(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("product cache read failed, falling back to database", zap.Error(err))
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.catalog != nil {
		if cacheErr := s.catalog.SetProducts(ctx, products); cacheErr != nil {
			s.logger.Warn("product cache write failed", zap.Error(cacheErr))
		}
	}
	return products, nil
}
