package cache

import (
	"context"
	"errors"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

type CatalogCache interface {
	Get(ctx context.Context, itemID int64) (*domain.CatalogItem, error)
	Set(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, itemID int64) error
}

var ErrCacheMiss = errors.New("cache miss")
