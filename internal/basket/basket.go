// Package basket holds the in-memory shopping basket for one customer session.
package basket

import (
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/pricing"
)

// Line is one basket entry. Title/Size/Material/Color are a display snapshot
// taken when the item was added; UnitPrice and Discount are refreshed from
// the catalog on every repeated add so Total always reflects the last known
// catalog values for the full quantity.
type Line struct {
	ItemID    int64
	Title     string
	Size      string
	Material  string
	Color     string
	Quantity  int
	UnitPrice float64
	Discount  float64
	Total     float64
}

// Basket is an ordered collection of lines, at most one per catalog item.
// It performs no I/O; stock checks happen against the catalog row supplied
// by the caller.
type Basket struct {
	lines []Line
}

func New() *Basket {
	return &Basket{}
}

// NewLine snapshots a catalog item into a basket line with the given quantity.
func NewLine(item *domain.CatalogItem, quantity int) Line {
	return Line{
		ItemID:    item.ID,
		Title:     item.Title,
		Size:      item.Size,
		Material:  item.Material,
		Color:     item.Color,
		Quantity:  quantity,
		UnitPrice: item.Price,
		Discount:  item.Discount,
		Total:     pricing.LineTotal(quantity, item.Price, item.Discount),
	}
}

// Add is the stock-gated entry point used by the shopping flow: it validates
// the requested quantity against live stock (counting what is already in the
// basket) and then either appends a new line or merges into the existing one.
// On refusal the basket is left unchanged.
func (b *Basket) Add(item *domain.CatalogItem, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidQuantity, quantity)
	}

	inBasket := b.InBasketQuantity(item.ID)
	if item.InStock <= 0 || inBasket+quantity > item.InStock {
		return fmt.Errorf("%w: %d requested, %d already in basket, %d in stock",
			ErrStockExceeded, quantity, inBasket, item.InStock)
	}

	if inBasket > 0 {
		return b.AddExisting(item.ID, quantity, item.Price, item.Discount)
	}
	return b.AddNew(NewLine(item, quantity))
}

// AddNew appends a line for an item not currently present in the basket.
func (b *Basket) AddNew(line Line) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidQuantity, line.Quantity)
	}
	if b.lineIndex(line.ItemID) >= 0 {
		return fmt.Errorf("%w: item %d", ErrItemAlreadyInBasket, line.ItemID)
	}
	line.Total = pricing.LineTotal(line.Quantity, line.UnitPrice, line.Discount)
	b.lines = append(b.lines, line)
	return nil
}

// AddExisting increments the quantity of an item already in the basket.
// The line takes the supplied unit price and discount (the caller passes the
// current catalog values) and its total is recomputed from scratch over the
// new quantity.
func (b *Basket) AddExisting(itemID int64, quantity int, unitPrice, discount float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidQuantity, quantity)
	}
	idx := b.lineIndex(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: item %d", ErrLineNotFound, itemID)
	}

	line := &b.lines[idx]
	line.Quantity += quantity
	line.UnitPrice = unitPrice
	line.Discount = discount
	line.Total = pricing.LineTotal(line.Quantity, line.UnitPrice, line.Discount)
	return nil
}

// RemoveSingle removes amount units of an item from the basket. Removing the
// full held quantity deletes the line; otherwise the total is recomputed over
// the remaining quantity.
func (b *Basket) RemoveSingle(itemID int64, amount int) error {
	idx := b.lineIndex(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: item %d", ErrLineNotFound, itemID)
	}

	line := &b.lines[idx]
	if amount <= 0 {
		return fmt.Errorf("%w: removal amount must be > 0, got %d", ErrInvalidQuantity, amount)
	}
	if amount > line.Quantity {
		return fmt.Errorf("%w: cannot remove %d, only %d in basket",
			ErrRemovalExceedsQuantity, amount, line.Quantity)
	}

	if amount == line.Quantity {
		b.lines = append(b.lines[:idx], b.lines[idx+1:]...)
		return nil
	}

	line.Quantity -= amount
	line.Total = pricing.LineTotal(line.Quantity, line.UnitPrice, line.Discount)
	return nil
}

// Clear empties the basket unconditionally.
func (b *Basket) Clear() {
	b.lines = nil
}

// Total returns the sum of all line totals, 0 for an empty basket.
func (b *Basket) Total() float64 {
	var total float64
	for _, line := range b.lines {
		total += line.Total
	}
	return total
}

// Lines returns a copy of the basket contents in insertion order.
func (b *Basket) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Basket) Len() int {
	return len(b.lines)
}

// LineByItemID returns the line holding the given catalog item, if present.
func (b *Basket) LineByItemID(itemID int64) (Line, bool) {
	idx := b.lineIndex(itemID)
	if idx < 0 {
		return Line{}, false
	}
	return b.lines[idx], true
}

// InBasketQuantity returns the held quantity for an item, 0 if absent.
func (b *Basket) InBasketQuantity(itemID int64) int {
	if line, ok := b.LineByItemID(itemID); ok {
		return line.Quantity
	}
	return 0
}

func (b *Basket) lineIndex(itemID int64) int {
	for i := range b.lines {
		if b.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}
