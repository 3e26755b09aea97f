package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

const catalogColumns = `id, item_type_id, title, description, size, material, color, price, discount, in_stock`

func (r *Repository) ListItems(ctx context.Context) ([]*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close()

	var items []*domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

func (r *Repository) GetItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE id = $1`
	return getItemByID(ctx, r.db, query, id)
}

func (r *Repository) InsertItem(ctx context.Context, item *domain.CatalogItem) (int64, error) {
	query := `INSERT INTO catalog_items (item_type_id, title, description, size, material, color, price, discount, in_stock)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.ItemTypeID,
		item.Title,
		item.Description,
		item.Size,
		item.Material,
		item.Color,
		item.Price,
		item.Discount,
		item.InStock,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert catalog item: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *domain.CatalogItem) error {
	query := `UPDATE catalog_items
	          SET item_type_id = $1, title = $2, description = $3, size = $4,
	              material = $5, color = $6, price = $7, discount = $8, in_stock = $9
	          WHERE id = $10`

	res, err := r.db.ExecContext(ctx, query,
		item.ItemTypeID,
		item.Title,
		item.Description,
		item.Size,
		item.Material,
		item.Color,
		item.Price,
		item.Discount,
		item.InStock,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// UpdateStock sets the absolute stock level (worker restock flow).
func (r *Repository) UpdateStock(ctx context.Context, itemID int64, newQuantity int) error {
	query := `UPDATE catalog_items SET in_stock = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, newQuantity, itemID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, itemID int64) error {
	query := `DELETE FROM catalog_items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) ListItemTypes(ctx context.Context) ([]*domain.ItemType, error) {
	query := `SELECT id, name FROM item_types ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query item types: %w", err)
	}
	defer rows.Close()

	var types []*domain.ItemType
	for rows.Next() {
		var it domain.ItemType
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, fmt.Errorf("scan item type row: %w", err)
		}
		types = append(types, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return types, nil
}

func (r *Repository) InsertItemType(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO item_types (name) VALUES ($1) RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateItemType
		}
		return 0, fmt.Errorf("insert item type: %w", err)
	}
	return id, nil
}

func (r *Repository) RenameItemType(ctx context.Context, id int64, name string) error {
	query := `UPDATE item_types SET name = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateItemType
		}
		return fmt.Errorf("rename item type: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemTypeNotFound
	}
	return nil
}

func (r *Repository) DeleteItemType(ctx context.Context, id int64) error {
	query := `DELETE FROM item_types WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item type: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrItemTypeNotFound
	}
	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx so item lookups can run
// inside or outside a transaction.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getItemByID(ctx context.Context, q queryRower, query string, id int64) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := q.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.ItemTypeID,
		&item.Title,
		&item.Description,
		&item.Size,
		&item.Material,
		&item.Color,
		&item.Price,
		&item.Discount,
		&item.InStock,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog item by id: %w", err)
	}
	return &item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	if err := row.Scan(
		&item.ID,
		&item.ItemTypeID,
		&item.Title,
		&item.Description,
		&item.Size,
		&item.Material,
		&item.Color,
		&item.Price,
		&item.Discount,
		&item.InStock,
	); err != nil {
		return nil, fmt.Errorf("scan catalog item row: %w", err)
	}
	return &item, nil
}
