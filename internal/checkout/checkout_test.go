package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsynytsia/clothing-shop/internal/basket"
	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

type mockTx struct {
	items map[int64]*domain.CatalogItem

	nextOrderID   int64
	insertedOrder bool
	orderUserID   int64
	orderAt       time.Time
	lines         []*domain.OrderLine
	event         *domain.OrderEvent

	committed  bool
	rolledBack bool

	getErr    error
	lineErr   error
	failAfter int // fail InsertOrderLine after this many successful inserts, 0 = never
	commitErr error
}

func (m *mockTx) GetItemByID(_ context.Context, id int64) (*domain.CatalogItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return item, nil
}

func (m *mockTx) InsertOrder(_ context.Context, userID int64, createdAt time.Time) (int64, error) {
	m.insertedOrder = true
	m.orderUserID = userID
	m.orderAt = createdAt
	return m.nextOrderID, nil
}

func (m *mockTx) InsertOrderLine(_ context.Context, line *domain.OrderLine) (int64, error) {
	if m.lineErr != nil && len(m.lines) >= m.failAfter {
		return 0, m.lineErr
	}
	m.lines = append(m.lines, line)
	return int64(len(m.lines)), nil
}

func (m *mockTx) InsertOrderEvent(_ context.Context, event *domain.OrderEvent) error {
	m.event = event
	return nil
}

func (m *mockTx) Commit() error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockTx) Rollback() error {
	if m.committed {
		return errors.New("already committed")
	}
	m.rolledBack = true
	return nil
}

type mockStore struct {
	tx       *mockTx
	beginErr error
}

func (m *mockStore) Begin(context.Context) (repository.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func twoLineBasket(t *testing.T) *basket.Basket {
	t.Helper()
	b := basket.New()
	require.NoError(t, b.Add(&domain.CatalogItem{ID: 1, Title: "Shirt", Price: 100, Discount: 10, InStock: 5}, 2))
	require.NoError(t, b.Add(&domain.CatalogItem{ID: 2, Title: "Jeans", Price: 50, Discount: 0, InStock: 3}, 1))
	return b
}

func TestPlaceOrder_TwoLines(t *testing.T) {
	tx := &mockTx{
		nextOrderID: 7,
		items: map[int64]*domain.CatalogItem{
			1: {ID: 1, Price: 100, Discount: 10, InStock: 5},
			2: {ID: 2, Price: 50, Discount: 0, InStock: 3},
		},
	}
	sut := NewService(&mockStore{tx: tx})
	b := twoLineBasket(t)
	now := time.Now()

	orderID, err := sut.PlaceOrder(context.Background(), b, 42, now)
	require.NoError(t, err)
	assert.Equal(t, int64(7), orderID)

	assert.True(t, tx.committed)
	assert.Equal(t, int64(42), tx.orderUserID)
	assert.Equal(t, now, tx.orderAt)
	require.Len(t, tx.lines, 2)
	assert.Equal(t, int64(7), tx.lines[0].OrderID)
	assert.Equal(t, 180.0, tx.lines[0].Total)
	assert.Equal(t, 50.0, tx.lines[1].Total)
	assert.Equal(t, 0, b.Len(), "basket must be cleared on success")
}

func TestPlaceOrder_TotalsUseCurrentCatalogValues(t *testing.T) {
	// The catalog changed after the items were added to the basket; the
	// persisted totals must come from the current price and discount.
	tx := &mockTx{
		nextOrderID: 1,
		items: map[int64]*domain.CatalogItem{
			1: {ID: 1, Price: 200, Discount: 50, InStock: 5},
			2: {ID: 2, Price: 50, Discount: 0, InStock: 3},
		},
	}
	sut := NewService(&mockStore{tx: tx})
	b := twoLineBasket(t) // snapshot says item 1 costs 100 at 10% off

	_, err := sut.PlaceOrder(context.Background(), b, 42, time.Now())
	require.NoError(t, err)

	require.Len(t, tx.lines, 2)
	assert.Equal(t, 200.0, tx.lines[0].Total) // 2 * 200 * 0.5
	assert.Equal(t, 50.0, tx.lines[0].Discount)
}

func TestPlaceOrder_EmptyBasket_Rejected(t *testing.T) {
	sut := NewService(&mockStore{tx: &mockTx{}})

	_, err := sut.PlaceOrder(context.Background(), basket.New(), 42, time.Now())
	require.ErrorIs(t, err, ErrEmptyBasket)
}

func TestPlaceOrder_LineFailure_RollsBackAndKeepsBasket(t *testing.T) {
	tx := &mockTx{
		nextOrderID: 1,
		items: map[int64]*domain.CatalogItem{
			1: {ID: 1, Price: 100, Discount: 10, InStock: 5},
			2: {ID: 2, Price: 50, Discount: 0, InStock: 3},
		},
		lineErr:   repository.ErrInsufficientStock,
		failAfter: 1, // second line hits the stock guard
	}
	sut := NewService(&mockStore{tx: tx})
	b := twoLineBasket(t)

	_, err := sut.PlaceOrder(context.Background(), b, 42, time.Now())
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Equal(t, 2, b.Len(), "basket must survive a failed checkout")
}

func TestPlaceOrder_MissingItem_RollsBack(t *testing.T) {
	tx := &mockTx{
		nextOrderID: 1,
		items: map[int64]*domain.CatalogItem{
			1: {ID: 1, Price: 100, Discount: 10, InStock: 5},
		},
	}
	sut := NewService(&mockStore{tx: tx})
	b := twoLineBasket(t) // item 2 no longer exists

	_, err := sut.PlaceOrder(context.Background(), b, 42, time.Now())
	require.ErrorIs(t, err, repository.ErrItemNotFound)
	assert.True(t, tx.rolledBack)
	assert.Equal(t, 2, b.Len())
}

func TestPlaceOrder_WritesOutboxEvent(t *testing.T) {
	tx := &mockTx{
		nextOrderID: 9,
		items: map[int64]*domain.CatalogItem{
			1: {ID: 1, Price: 100, Discount: 10, InStock: 5},
			2: {ID: 2, Price: 50, Discount: 0, InStock: 3},
		},
	}
	sut := NewService(&mockStore{tx: tx})

	_, err := sut.PlaceOrder(context.Background(), twoLineBasket(t), 42, time.Now())
	require.NoError(t, err)

	require.NotNil(t, tx.event)
	assert.NotEmpty(t, tx.event.ID)
	assert.Equal(t, int64(9), tx.event.OrderID)
	assert.Equal(t, int64(42), tx.event.UserID)
	assert.Equal(t, 230.0, tx.event.Total)
}
