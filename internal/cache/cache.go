package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_pos/internal/domain"
)

type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	InvalidateProducts(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
