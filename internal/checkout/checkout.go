// Package checkout converts a basket into a persisted order.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsynytsia/clothing-shop/internal/basket"
	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/pricing"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

type Service struct {
	store repository.OrderStore
}

func NewService(store repository.OrderStore) *Service {
	return &Service{store: store}
}

// PlaceOrder persists the basket as one order in a single transaction:
// the order row, one line per basket line and the stock decrements commit
// together or not at all. Each line's total is recomputed from the catalog
// row as it stands inside the transaction, not from the basket's snapshot.
// On success the basket is cleared; on any failure it is left intact.
func (s *Service) PlaceOrder(ctx context.Context, b *basket.Basket, userID int64, now time.Time) (int64, error) {
	if b.Len() == 0 {
		return 0, ErrEmptyBasket
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("checkout: %w", err)
	}
	// no-op once the transaction is committed
	defer func() { _ = tx.Rollback() }()

	orderID, err := tx.InsertOrder(ctx, userID, now)
	if err != nil {
		return 0, fmt.Errorf("checkout: %w", err)
	}

	var orderTotal float64
	for _, line := range b.Lines() {
		item, err := tx.GetItemByID(ctx, line.ItemID)
		if err != nil {
			return 0, fmt.Errorf("checkout item %d: %w", line.ItemID, err)
		}

		total := pricing.LineTotal(line.Quantity, item.Price, item.Discount)
		_, err = tx.InsertOrderLine(ctx, &domain.OrderLine{
			OrderID:  orderID,
			ItemID:   item.ID,
			Quantity: line.Quantity,
			Discount: item.Discount,
			Total:    total,
		})
		if err != nil {
			return 0, fmt.Errorf("checkout item %d: %w", line.ItemID, err)
		}
		orderTotal += total
	}

	event := &domain.OrderEvent{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		UserID:    userID,
		Total:     orderTotal,
		CreatedAt: now,
	}
	if err = tx.InsertOrderEvent(ctx, event); err != nil {
		return 0, fmt.Errorf("checkout: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("checkout: %w", err)
	}

	b.Clear()
	return orderID, nil
}
