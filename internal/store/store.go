// Package store is the data-access layer over the menu and orders
// collections. Queries are hand-written pgx; handlers depend on narrow
// slices of *Queries through their own interfaces.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// MenuItem is one document in the menu collection.
type MenuItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       pgtype.Numeric
	PriceNote   pgtype.Text
	Type        pgtype.Text
	Image       pgtype.Text
	Category    string
	SortOrder   int32
	OriginalID  pgtype.Text
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Order is one document in the orders collection. Items is the JSONB
// snapshot of cart lines taken at creation time; later menu edits never
// touch it. Only Status and UpdatedAt change after insert.
type Order struct {
	ID                  uuid.UUID
	OrderID             string
	CustomerName        string
	Phone               string
	Address             string
	SpecialInstructions pgtype.Text
	Items               []byte
	Total               pgtype.Numeric
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
