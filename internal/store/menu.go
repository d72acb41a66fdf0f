package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const menuItemColumns = `id, name, description, price, price_note, type, image, category, sort_order, original_id, created_at, updated_at`

func scanMenuItem(row interface{ Scan(dest ...any) error }) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.PriceNote, &m.Type,
		&m.Image, &m.Category, &m.SortOrder, &m.OriginalID, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// ListMenuItems returns every menu item in display order.
func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	sql := fmt.Sprintf(`SELECT %s FROM menu_items ORDER BY category, sort_order`, menuItemColumns)
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetMenuItem returns a single menu item by storage ID.
func (q *Queries) GetMenuItem(ctx context.Context, id uuid.UUID) (MenuItem, error) {
	sql := fmt.Sprintf(`SELECT %s FROM menu_items WHERE id = $1`, menuItemColumns)
	return scanMenuItem(q.db.QueryRow(ctx, sql, id))
}

type CreateMenuItemParams struct {
	Name        string
	Description string
	Price       pgtype.Numeric
	PriceNote   pgtype.Text
	Type        pgtype.Text
	Image       pgtype.Text
	Category    string
	SortOrder   int32
	OriginalID  pgtype.Text
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	sql := fmt.Sprintf(`
		INSERT INTO menu_items (name, description, price, price_note, type, image, category, sort_order, original_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, menuItemColumns)
	return scanMenuItem(q.db.QueryRow(ctx, sql,
		arg.Name, arg.Description, arg.Price, arg.PriceNote, arg.Type,
		arg.Image, arg.Category, arg.SortOrder, arg.OriginalID,
	))
}

type UpdateMenuItemParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       pgtype.Numeric
	PriceNote   pgtype.Text
	Type        pgtype.Text
	Image       pgtype.Text
	Category    string
	SortOrder   int32
}

// UpdateMenuItem overwrites every editable field of an existing item and
// stamps updated_at. Returns pgx.ErrNoRows if the item does not exist.
func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	sql := fmt.Sprintf(`
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, price_note = $5,
		    type = $6, image = $7, category = $8, sort_order = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING %s`, menuItemColumns)
	return scanMenuItem(q.db.QueryRow(ctx, sql,
		arg.ID, arg.Name, arg.Description, arg.Price, arg.PriceNote,
		arg.Type, arg.Image, arg.Category, arg.SortOrder,
	))
}

// DeleteMenuItem removes an item. Deleting an absent item is not an error;
// deletion is idempotent by contract.
func (q *Queries) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}

func (q *Queries) CountMenuItems(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM menu_items`).Scan(&n)
	return n, err
}

func (q *Queries) CountMenuItemsByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM menu_items WHERE category = $1`, category).Scan(&n)
	return n, err
}
