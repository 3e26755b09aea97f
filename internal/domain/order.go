package domain

import "time"

type OrderStatus int64

const (
	OrderStatusRegistered OrderStatus = 1
	OrderStatusRejected   OrderStatus = 2
	OrderStatusAccepted   OrderStatus = 3
	OrderStatusDone       OrderStatus = 4
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusRegistered:
		return "registered"
	case OrderStatusRejected:
		return "rejected"
	case OrderStatusAccepted:
		return "accepted"
	case OrderStatusDone:
		return "done"
	default:
		return "unknown"
	}
}

type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	StatusID  OrderStatus
}

// OrderLine is one persisted row of an order. Discount and Total are
// snapshotted from the catalog at insertion time and immutable thereafter.
type OrderLine struct {
	ID       int64
	OrderID  int64
	ItemID   int64
	Quantity int
	Discount float64
	Total    float64
}

// OrderSummary is the flattened row shown in the "my orders" listing.
type OrderSummary struct {
	ID        int64
	CreatedAt time.Time
	Status    string
}

// OrderDetail joins an order line with its catalog item for display.
type OrderDetail struct {
	OrderID  int64
	Title    string
	Size     string
	Material string
	Color    string
	Quantity int
	Price    float64
	Discount float64
	Total    float64
	Status   string
}
