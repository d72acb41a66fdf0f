package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, order_id, customer_name, phone, address, special_instructions, items, total, status, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderID, &o.CustomerName, &o.Phone, &o.Address,
		&o.SpecialInstructions, &o.Items, &o.Total, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (q *Queries) collectOrders(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type CreateOrderParams struct {
	OrderID             string
	CustomerName        string
	Phone               string
	Address             string
	SpecialInstructions pgtype.Text
	Items               []byte
	Total               pgtype.Numeric
	Status              string
}

// CreateOrder inserts a new order. order_id carries a unique index, so a
// duplicate human-facing ID surfaces as a 23505 unique violation.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	sql := fmt.Sprintf(`
		INSERT INTO orders (order_id, customer_name, phone, address, special_instructions, items, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, orderColumns)
	return scanOrder(q.db.QueryRow(ctx, sql,
		arg.OrderID, arg.CustomerName, arg.Phone, arg.Address,
		arg.SpecialInstructions, arg.Items, arg.Total, arg.Status,
	))
}

// ListOrders returns the most recent orders, newest first.
func (q *Queries) ListOrders(ctx context.Context, limit int32) ([]Order, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC LIMIT $1`, orderColumns)
	return q.collectOrders(ctx, sql, limit)
}

// ListOrdersByStatus returns every order with an exact status match,
// newest first. Unlimited: the per-status console view shows the whole
// backlog, not a window of it.
func (q *Queries) ListOrdersByStatus(ctx context.Context, status string) ([]Order, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE status = $1 ORDER BY created_at DESC`, orderColumns)
	return q.collectOrders(ctx, sql, status)
}

// ListOrdersSince returns orders created at or after the given instant,
// newest first. Callers pass the start of their local day to get "today".
func (q *Queries) ListOrdersSince(ctx context.Context, since time.Time) ([]Order, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE created_at >= $1 ORDER BY created_at DESC`, orderColumns)
	return q.collectOrders(ctx, sql, since)
}

// GetOrder returns a single order by storage ID.
func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return scanOrder(q.db.QueryRow(ctx, sql, id))
}

// GetOrderByOrderID is the point lookup by the human-facing identifier.
func (q *Queries) GetOrderByOrderID(ctx context.Context, orderID string) (Order, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE order_id = $1 LIMIT 1`, orderColumns)
	return scanOrder(q.db.QueryRow(ctx, sql, orderID))
}

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

// UpdateOrderStatus overwrites status and stamps updated_at. The status
// value is persisted as given; the store does not restrict transitions or
// vocabulary. Returns pgx.ErrNoRows if the order does not exist.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	sql := fmt.Sprintf(`
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, orderColumns)
	return scanOrder(q.db.QueryRow(ctx, sql, arg.ID, arg.Status))
}

// DeleteAllOrders is the administrative reset. Orders are never deleted
// individually.
func (q *Queries) DeleteAllOrders(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
