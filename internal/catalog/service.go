// Package catalog is the read/write accessor for shop items, fronting the
// repository with a cache for the hot get-by-id path the menus hit on every
// add-to-basket screen.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vsynytsia/clothing-shop/internal/cache"
	"github.com/vsynytsia/clothing-shop/internal/domain"
)

// Store is the repository surface the service needs.
type Store interface {
	ListItems(ctx context.Context) ([]*domain.CatalogItem, error)
	GetItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
	InsertItem(ctx context.Context, item *domain.CatalogItem) (int64, error)
	UpdateItem(ctx context.Context, item *domain.CatalogItem) error
	UpdateStock(ctx context.Context, itemID int64, newQuantity int) error
	DeleteItem(ctx context.Context, itemID int64) error

	ListItemTypes(ctx context.Context) ([]*domain.ItemType, error)
	InsertItemType(ctx context.Context, name string) (int64, error)
	RenameItemType(ctx context.Context, id int64, name string) error
	DeleteItemType(ctx context.Context, id int64) error
}

type Service struct {
	store Store
	cache cache.CatalogCache
	sfg   singleflight.Group // prevents cache stampede on one item
}

func NewService(store Store, cache cache.CatalogCache) *Service {
	return &Service{
		store: store,
		cache: cache,
	}
}

// GetItem returns a catalog item, serving from cache when possible.
func (s *Service) GetItem(ctx context.Context, itemID int64) (*domain.CatalogItem, error) {
	v, err, _ := s.sfg.Do(fmt.Sprint(itemID), func() (interface{}, error) {

		item, err := s.cache.Get(ctx, itemID)
		if err == nil {
			return item, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("catalog cache get error", "item_id", itemID, "error", err)
		}

		item, errGet := s.store.GetItemByID(ctx, itemID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), item); errSet != nil {
				slog.Warn("catalog cache set error", "item_id", itemID, "error", errSet)
			}
		}()

		return item, nil
	})

	if err != nil {
		return nil, err
	}
	return v.(*domain.CatalogItem), nil
}

func (s *Service) ListItems(ctx context.Context) ([]*domain.CatalogItem, error) {
	return s.store.ListItems(ctx)
}

func (s *Service) AddItem(ctx context.Context, item *domain.CatalogItem) (int64, error) {
	return s.store.InsertItem(ctx, item)
}

func (s *Service) UpdateItem(ctx context.Context, item *domain.CatalogItem) error {
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(item.ID)
	return nil
}

// Restock sets the absolute stock level for an item.
func (s *Service) Restock(ctx context.Context, itemID int64, newQuantity int) error {
	if newQuantity < 0 {
		return fmt.Errorf("stock quantity cannot be negative, got %d", newQuantity)
	}
	if err := s.store.UpdateStock(ctx, itemID, newQuantity); err != nil {
		return err
	}
	s.invalidate(itemID)
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, itemID int64) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.invalidate(itemID)
	return nil
}

// InvalidateItem drops the cached copy of an item. Checkout calls this after
// a committed order so the next menu screen sees the decremented stock.
func (s *Service) InvalidateItem(itemID int64) {
	s.invalidate(itemID)
}

func (s *Service) ListItemTypes(ctx context.Context) ([]*domain.ItemType, error) {
	return s.store.ListItemTypes(ctx)
}

func (s *Service) AddItemType(ctx context.Context, name string) (int64, error) {
	return s.store.InsertItemType(ctx, name)
}

func (s *Service) RenameItemType(ctx context.Context, id int64, name string) error {
	return s.store.RenameItemType(ctx, id, name)
}

func (s *Service) RemoveItemType(ctx context.Context, id int64) error {
	return s.store.DeleteItemType(ctx, id)
}

func (s *Service) invalidate(itemID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, itemID); err != nil {
		slog.Warn("catalog cache invalidate error", "item_id", itemID, "error", err)
	}
}
