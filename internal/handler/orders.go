package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/enum"
	"github.com/success-meals/api/internal/service"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/wa"
	"github.com/success-meals/api/internal/ws"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 100
)

// OrderStore defines the database methods needed by order handlers.
// Satisfied by *store.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context, limit int32) ([]store.Order, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]store.Order, error)
	ListOrdersSince(ctx context.Context, since time.Time) ([]store.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (store.Order, error)
	GetOrderByOrderID(ctx context.Context, orderID string) (store.Order, error)
	UpdateOrderStatus(ctx context.Context, arg store.UpdateOrderStatusParams) (store.Order, error)
	DeleteAllOrders(ctx context.Context) (int64, error)
}

// OrderHandler serves the public order lookup and the admin order console.
type OrderHandler struct {
	store OrderStore
	hub   Broadcaster
	now   func() time.Time
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub, now: time.Now}
}

// RegisterPublicRoutes registers the customer-facing lookup by the human
// readable order number. Mounted at /orders.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/{orderID}", h.GetByOrderID)
}

// RegisterAdminRoutes registers the admin console endpoints. Mounted at
// /admin/orders inside the authenticated group.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Get("/{id}/status-link", h.StatusLink)
	r.Delete("/", h.DeleteAll)
}

type orderResponse struct {
	ID                  string              `json:"id"`
	OrderID             string              `json:"order_id"`
	CustomerName        string              `json:"customer_name"`
	Phone               string              `json:"phone"`
	Address             string              `json:"address"`
	SpecialInstructions *string             `json:"special_instructions"`
	Items               []service.OrderLine `json:"items"`
	Total               string              `json:"total"`
	Status              string              `json:"status"`
	Timestamp           time.Time           `json:"timestamp"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func toOrderResponse(o store.Order) orderResponse {
	resp := orderResponse{
		ID:           o.ID.String(),
		OrderID:      o.OrderID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Items:        decodeOrderLines(o.OrderID, o.Items),
		Total:        numericToString(o.Total),
		Status:       o.Status,
		Timestamp:    o.CreatedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.SpecialInstructions.Valid {
		resp.SpecialInstructions = &o.SpecialInstructions.String
	}
	return resp
}

// GetByOrderID looks an order up by its customer-facing number, e.g.
// ORD-20260831-12345.
func (h *OrderHandler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderID"))
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order ID is required"})
		return
	}

	order, err := h.store.GetOrderByOrderID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order %s: %v", orderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// List returns recent orders, newest first. Supports ?status= to filter
// by one status and ?today=true to narrow to the current local day. The
// limit applies to the default listing only; the status and today views
// return every match.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultOrderLimit)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		if n > maxOrderLimit {
			n = maxOrderLimit
		}
		limit = int32(n)
	}

	var (
		orders []store.Order
		err    error
	)
	switch {
	case r.URL.Query().Get("today") == "true":
		now := h.now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		orders, err = h.store.ListOrdersSince(r.Context(), start)
	case r.URL.Query().Get("status") != "":
		orders, err = h.store.ListOrdersByStatus(r.Context(), r.URL.Query().Get("status"))
	default:
		orders, err = h.store.ListOrders(r.Context(), limit)
	}
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": resp, "count": len(resp)})
}

// UpdateStatus sets an order's status to whatever non-empty value the
// console sends. Unknown values are stored as-is; the console owns the
// vocabulary and downstream messaging falls back to a generic line.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Status = strings.TrimSpace(req.Status)
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !enum.IsKnownStatus(req.Status) {
		// Stored as-is; downstream messaging uses its generic wording.
		log.Printf("WARN: storing non-canonical order status %q", req.Status)
	}

	order, err := h.store.UpdateOrderStatus(r.Context(), store.UpdateOrderStatusParams{
		ID:     orderID,
		Status: req.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.Broadcast(ws.Event{Type: "order.status_changed", Payload: mustJSON(toOrderResponse(order))})

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// StatusLink returns the WhatsApp deep link for telling the customer
// where their order stands.
func (h *OrderHandler) StatusLink(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"link": wa.BuildStatusUpdate(order.Phone, order.OrderID, order.Status),
	})
}

// DeleteAll wipes the order history.
func (h *OrderHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteAllOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: delete orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// --- Helpers ---

func decodeOrderLines(orderID string, raw []byte) []service.OrderLine {
	lines := []service.OrderLine{}
	if len(raw) == 0 {
		return lines
	}
	if err := json.Unmarshal(raw, &lines); err != nil {
		log.Printf("ERROR: decode items for order %s: %v", orderID, err)
		return []service.OrderLine{}
	}
	return lines
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func numericToString(n pgtype.Numeric) string {
	return numericToDecimal(n).StringFixed(2)
}
