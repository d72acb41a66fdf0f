// Package service holds the checkout logic: validation, total computation,
// and order creation with a unique human-facing order ID.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/enum"
	"github.com/success-meals/api/internal/store"
)

// Order IDs are client-side randomness with no coordination, so collisions
// are possible. The unique index on orders.order_id rejects them; we retry
// with a fresh ID a few times before giving up.
const maxOrderIDRetries = 3

// ErrOrderIDExhausted is returned when every generation attempt collided.
var ErrOrderIDExhausted = errors.New("could not generate a unique order ID")

// FieldErrors maps field names to validation messages. It is returned
// before any store call is attempted, so a validation failure never
// half-creates an order.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string { return "validation failed" }

// OrderStore defines the database methods needed for checkout.
// Satisfied by *store.Queries; narrow interface for testability.
type OrderStore interface {
	CreateOrder(ctx context.Context, arg store.CreateOrderParams) (store.Order, error)
}

// OrderLine is the JSON shape of one snapshot item on a persisted order.
type OrderLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// LinesFromCart snapshots cart lines into order lines.
func LinesFromCart(lines []cart.Line) []OrderLine {
	out := make([]OrderLine, len(lines))
	for i, l := range lines {
		out[i] = OrderLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Image:    l.Image,
		}
	}
	return out
}

// CheckoutRequest is the input for creating an order.
type CheckoutRequest struct {
	CustomerName        string
	Phone               string
	Address             string
	SpecialInstructions string
	Items               []OrderLine
}

// PhoneValidator reports whether a phone number is acceptable.
type PhoneValidator func(string) bool

// CheckoutService creates orders from validated checkout requests.
type CheckoutService struct {
	store      OrderStore
	validPhone PhoneValidator
	now        func() time.Time
	orderID    func(time.Time) string
}

func NewCheckoutService(st OrderStore, validPhone PhoneValidator) *CheckoutService {
	return &CheckoutService{
		store:      st,
		validPhone: validPhone,
		now:        time.Now,
		orderID:    GenerateOrderID,
	}
}

// Validate checks the request without touching the store.
func (s *CheckoutService) Validate(req CheckoutRequest) FieldErrors {
	fe := FieldErrors{}

	if len(strings.TrimSpace(req.CustomerName)) < 2 {
		fe["customer_name"] = "please enter a valid name"
	}
	if !s.validPhone(req.Phone) {
		fe["phone"] = "please enter a valid Nigerian phone number"
	}
	if len(strings.TrimSpace(req.Address)) < 10 {
		fe["address"] = "please enter a complete delivery address"
	}
	if len(req.Items) == 0 {
		fe["items"] = "cart is empty"
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			fe["items"] = "item quantities must be positive"
			break
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// CreateOrder validates the request, snapshots the items, computes the
// total and persists the order with status pending. Empty optional fields
// are dropped before persisting, mirroring a document model that rejects
// undefined values. On a write failure the caller must not assume the
// order was NOT created: creation is at-least-once, and user-initiated
// retries can duplicate.
func (s *CheckoutService) CreateOrder(ctx context.Context, req CheckoutRequest) (store.Order, error) {
	if fe := s.Validate(req); fe != nil {
		return store.Order{}, fe
	}

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return store.Order{}, fmt.Errorf("marshal order items: %w", err)
	}

	var totalPg pgtype.Numeric
	if err := totalPg.Scan(total.StringFixed(2)); err != nil {
		return store.Order{}, fmt.Errorf("scan total: %w", err)
	}

	params := store.CreateOrderParams{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Items:        itemsJSON,
		Total:        totalPg,
		Status:       enum.OrderStatusPending,
	}
	if instructions := strings.TrimSpace(req.SpecialInstructions); instructions != "" {
		params.SpecialInstructions = pgtype.Text{String: instructions, Valid: true}
	}

	for attempt := 0; attempt < maxOrderIDRetries; attempt++ {
		params.OrderID = s.orderID(s.now())

		order, err := s.store.CreateOrder(ctx, params)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return store.Order{}, err
		}
		return order, nil
	}

	return store.Order{}, ErrOrderIDExhausted
}
