package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/service"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/wa"
	"github.com/success-meals/api/internal/ws"
)

// CheckoutServicer places orders.
// Satisfied by *service.CheckoutService; narrow interface for testability.
type CheckoutServicer interface {
	CreateOrder(ctx context.Context, req service.CheckoutRequest) (store.Order, error)
}

// Broadcaster pushes order events to connected admin consoles.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// CheckoutHandler turns the shopper's cart into a stored order plus the
// WhatsApp hand-off links the storefront opens next.
type CheckoutHandler struct {
	service       CheckoutServicer
	carts         *cart.Store
	hub           Broadcaster
	businessPhone string
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc CheckoutServicer, carts *cart.Store, hub Broadcaster, businessPhone string) *CheckoutHandler {
	return &CheckoutHandler{service: svc, carts: carts, hub: hub, businessPhone: businessPhone}
}

// RegisterRoutes registers the checkout endpoint. Mounted at the API root.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
}

type checkoutRequest struct {
	CustomerName        string `json:"customer_name"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	SpecialInstructions string `json:"special_instructions"`
}

type checkoutResponse struct {
	Order            orderResponse `json:"order"`
	WhatsAppLink     string        `json:"whatsapp_link"`
	ConfirmationLink string        `json:"confirmation_link"`
}

// Checkout validates the delivery details, snapshots the cart into an
// order, and returns the deep links that route the order into WhatsApp.
// The cart is cleared only after the order is safely stored.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sid, hasSession := cartSessionFromRequest(r)
	var lines []cart.Line
	if hasSession {
		lines = h.carts.Lines(sid)
	}

	order, err := h.service.CreateOrder(r.Context(), service.CheckoutRequest{
		CustomerName:        req.CustomerName,
		Phone:               req.Phone,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
		Items:               service.LinesFromCart(lines),
	})
	if err != nil {
		var fe service.FieldErrors
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fe})
			return
		}
		if errors.Is(err, service.ErrOrderIDExhausted) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "could not assign an order number, please retry"})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.carts.Clear(sid)

	h.hub.Broadcast(ws.Event{Type: "order.created", Payload: mustJSON(toOrderResponse(order))})

	waOrder := waOrderFrom(order)
	alert, err := wa.BuildOrderAlert(h.businessPhone, waOrder)
	if err != nil {
		log.Printf("ERROR: build order alert link for %s: %v", order.OrderID, err)
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Order:            toOrderResponse(order),
		WhatsAppLink:     alert,
		ConfirmationLink: wa.BuildCustomerConfirmation(order.Phone, waOrder),
	})
}

func waOrderFrom(o store.Order) wa.Order {
	out := wa.Order{
		OrderID:      o.OrderID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Total:        numericToDecimal(o.Total),
		CreatedAt:    o.CreatedAt,
	}
	if o.SpecialInstructions.Valid {
		out.SpecialInstructions = o.SpecialInstructions.String
	}
	for _, ln := range decodeOrderLines(o.OrderID, o.Items) {
		out.Items = append(out.Items, wa.Line{Name: ln.Name, Quantity: ln.Quantity, Price: ln.Price})
	}
	return out
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: marshal broadcast payload: %v", err)
		return json.RawMessage(`{}`)
	}
	return b
}
