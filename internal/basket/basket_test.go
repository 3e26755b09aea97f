package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

func testItem() *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:       1,
		Title:    "Denim jacket",
		Size:     "M",
		Material: "denim",
		Color:    "blue",
		Price:    100,
		Discount: 10,
		InStock:  5,
	}
}

func TestAdd_NewItem(t *testing.T) {
	b := New()
	err := b.Add(testItem(), 2)
	require.NoError(t, err)

	require.Equal(t, 1, b.Len())
	line, ok := b.LineByItemID(1)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 180.0, line.Total)
	assert.Equal(t, 180.0, b.Total())
}

func TestAdd_SameItemTwice_MergesIntoOneLine(t *testing.T) {
	b := New()
	item := testItem()
	require.NoError(t, b.Add(item, 2))
	require.NoError(t, b.Add(item, 1))

	require.Equal(t, 1, b.Len())
	line, _ := b.LineByItemID(1)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 270.0, line.Total)
}

func TestAdd_RepeatedAdd_RecomputesWithCurrentDiscount(t *testing.T) {
	b := New()
	item := testItem()
	require.NoError(t, b.Add(item, 2)) // 2 * 100 * 0.9 = 180

	// Discount changed in the catalog between the two additions; the line is
	// repriced over its full quantity with the current values.
	item.Discount = 50
	require.NoError(t, b.Add(item, 1))

	line, _ := b.LineByItemID(1)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 50.0, line.Discount)
	assert.Equal(t, 150.0, line.Total) // 3 * 100 * 0.5
}

func TestAdd_ExceedingStock_RefusedAndBasketUnchanged(t *testing.T) {
	b := New()
	item := testItem() // 5 in stock
	require.NoError(t, b.Add(item, 3))

	err := b.Add(item, 3) // 3 in basket + 3 requested > 5
	require.ErrorIs(t, err, ErrStockExceeded)

	line, _ := b.LineByItemID(1)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 270.0, b.Total())
}

func TestAdd_OutOfStock_Refused(t *testing.T) {
	b := New()
	item := testItem()
	item.InStock = 0

	err := b.Add(item, 1)
	require.ErrorIs(t, err, ErrStockExceeded)
	assert.Equal(t, 0, b.Len())
}

func TestAdd_NonPositiveQuantity_Rejected(t *testing.T) {
	b := New()
	err := b.Add(testItem(), 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 0, b.Len())
}

func TestAddNew_DuplicateItem_Rejected(t *testing.T) {
	b := New()
	require.NoError(t, b.AddNew(NewLine(testItem(), 1)))

	err := b.AddNew(NewLine(testItem(), 1))
	require.ErrorIs(t, err, ErrItemAlreadyInBasket)
	assert.Equal(t, 1, b.Len())
}

func TestAddExisting_MissingLine_Rejected(t *testing.T) {
	b := New()
	err := b.AddExisting(42, 1, 100, 0)
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveSingle_PartialAmount_Repriced(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(testItem(), 5))

	require.NoError(t, b.RemoveSingle(1, 2))

	line, _ := b.LineByItemID(1)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 270.0, line.Total) // 3 * 100 * 0.9, recomputed over remaining quantity
}

func TestRemoveSingle_FullAmount_DeletesLine(t *testing.T) {
	b := New()
	item := testItem()
	require.NoError(t, b.Add(item, 2))

	other := testItem()
	other.ID = 2
	other.Discount = 0
	require.NoError(t, b.Add(other, 1))

	require.NoError(t, b.RemoveSingle(1, 2))

	assert.Equal(t, 1, b.Len())
	_, ok := b.LineByItemID(1)
	assert.False(t, ok)
	assert.Equal(t, 100.0, b.Total())
}

func TestRemoveSingle_AmountTooLarge_Rejected(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(testItem(), 2))

	err := b.RemoveSingle(1, 3)
	require.ErrorIs(t, err, ErrRemovalExceedsQuantity)

	line, _ := b.LineByItemID(1)
	assert.Equal(t, 2, line.Quantity)
}

func TestClear_EmptiesBasket(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(testItem(), 2))

	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0.0, b.Total())
	assert.Equal(t, 0, b.InBasketQuantity(1))
}

func TestTotal_EmptyBasket(t *testing.T) {
	assert.Equal(t, 0.0, New().Total())
}

func TestLines_ReturnsCopy(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(testItem(), 1))

	lines := b.Lines()
	lines[0].Quantity = 99

	line, _ := b.LineByItemID(1)
	assert.Equal(t, 1, line.Quantity)
}
