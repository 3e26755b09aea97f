package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

// OrderStore is the surface checkout depends on.
type OrderStore interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one order-placement transaction: the order row, its lines, the
// guarded stock decrements and the outbox event either all commit or all
// roll back.
type Tx interface {
	GetItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
	InsertOrder(ctx context.Context, userID int64, createdAt time.Time) (int64, error)
	InsertOrderLine(ctx context.Context, line *domain.OrderLine) (int64, error)
	InsertOrderEvent(ctx context.Context, event *domain.OrderEvent) error
	Commit() error
	Rollback() error
}

type OrderTx struct {
	tx *sql.Tx
}

func (r *Repository) Begin(ctx context.Context) (Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &OrderTx{tx: tx}, nil
}

// GetItemByID re-reads the catalog row inside the transaction so the order
// line is priced from the values the stock decrement will act on.
func (t *OrderTx) GetItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE id = $1`
	return getItemByID(ctx, t.tx, query, id)
}

func (t *OrderTx) InsertOrder(ctx context.Context, userID int64, createdAt time.Time) (int64, error) {
	query := `INSERT INTO orders (user_id, created_at, status_id) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := t.tx.QueryRowContext(ctx, query, userID, createdAt, domain.OrderStatusRegistered).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

// InsertOrderLine persists one line and decrements the item's stock in the
// same statement pair. The decrement is guarded: if fewer than line.Quantity
// units remain, no row is updated and ErrInsufficientStock is returned, which
// the caller must treat as fatal for the whole transaction.
func (t *OrderTx) InsertOrderLine(ctx context.Context, line *domain.OrderLine) (int64, error) {
	insert := `INSERT INTO order_lines (order_id, item_id, quantity, discount, total)
	           VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := t.tx.QueryRowContext(ctx, insert,
		line.OrderID,
		line.ItemID,
		line.Quantity,
		line.Discount,
		line.Total,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order line: %w", err)
	}

	decrement := `UPDATE catalog_items SET in_stock = in_stock - $1 WHERE id = $2 AND in_stock >= $1`

	res, err := t.tx.ExecContext(ctx, decrement, line.Quantity, line.ItemID)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return 0, ErrInsufficientStock
	}
	return id, nil
}

func (t *OrderTx) InsertOrderEvent(ctx context.Context, event *domain.OrderEvent) error {
	query := `INSERT INTO order_events (id, order_id, user_id, total, created_at, processed)
	          VALUES ($1, $2, $3, $4, $5, FALSE)`

	_, err := t.tx.ExecContext(ctx, query,
		event.ID,
		event.OrderID,
		event.UserID,
		event.Total,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func (t *OrderTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *OrderTx) Rollback() error {
	return t.tx.Rollback()
}

// ListUserOrders returns the order listing joined with status names.
func (r *Repository) ListUserOrders(ctx context.Context, userID int64) ([]*domain.OrderSummary, error) {
	query := `SELECT o.id, o.created_at, s.name
	          FROM orders o JOIN statuses s ON o.status_id = s.id
	          WHERE o.user_id = $1 ORDER BY o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query user orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.OrderSummary
	for rows.Next() {
		var o domain.OrderSummary
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT id, user_id, created_at, status_id FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.StatusID); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}

// GetOrderDetails returns one order's lines joined with catalog and status data.
func (r *Repository) GetOrderDetails(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error) {
	query := `SELECT l.order_id, c.title, c.size, c.material, c.color,
	                 l.quantity, c.price, l.discount, l.total, s.name
	          FROM order_lines l
	          JOIN orders o ON o.id = l.order_id
	          JOIN catalog_items c ON c.id = l.item_id
	          JOIN statuses s ON s.id = o.status_id
	          WHERE l.order_id = $1
	          ORDER BY l.id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order details: %w", err)
	}
	defer rows.Close()

	var details []*domain.OrderDetail
	for rows.Next() {
		var d domain.OrderDetail
		if err := rows.Scan(
			&d.OrderID,
			&d.Title,
			&d.Size,
			&d.Material,
			&d.Color,
			&d.Quantity,
			&d.Price,
			&d.Discount,
			&d.Total,
			&d.Status,
		); err != nil {
			return nil, fmt.Errorf("scan order detail row: %w", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(details) == 0 {
		return nil, ErrOrderNotFound
	}
	return details, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	query := `UPDATE orders SET status_id = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
