package domain

import "time"

// OrderEvent is an outbox row written in the same transaction as the order
// it describes and published to Kafka asynchronously by the poller.
type OrderEvent struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	Processed bool      `json:"-"`
}
