package repository

import (
	"context"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

// GetUnprocessedEvents returns up to limit order events the poller has not
// published yet, oldest first.
func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*domain.OrderEvent, error) {
	query := `SELECT id, order_id, user_id, total, created_at, processed
	          FROM order_events WHERE processed = FALSE
	          ORDER BY created_at LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*domain.OrderEvent
	for rows.Next() {
		var ev domain.OrderEvent
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.UserID, &ev.Total, &ev.CreatedAt, &ev.Processed); err != nil {
			return nil, fmt.Errorf("scan order event row: %w", err)
		}
		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, eventID string) error {
	query := `UPDATE order_events SET processed = TRUE WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, eventID); err != nil {
		return fmt.Errorf("mark event as processed: %w", err)
	}
	return nil
}
