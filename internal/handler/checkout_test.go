package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/handler"
	"github.com/success-meals/api/internal/service"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/wa"
	"github.com/success-meals/api/internal/ws"
)

// --- Mocks ---

type mockCheckoutStore struct {
	orders []store.Order
}

func (m *mockCheckoutStore) CreateOrder(_ context.Context, arg store.CreateOrderParams) (store.Order, error) {
	o := store.Order{
		ID:                  uuid.New(),
		OrderID:             arg.OrderID,
		CustomerName:        arg.CustomerName,
		Phone:               arg.Phone,
		Address:             arg.Address,
		SpecialInstructions: arg.SpecialInstructions,
		Items:               arg.Items,
		Total:               arg.Total,
		Status:              arg.Status,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	m.orders = append(m.orders, o)
	return o, nil
}

type mockHub struct {
	events []ws.Event
}

func (m *mockHub) Broadcast(event ws.Event) {
	m.events = append(m.events, event)
}

// --- Helpers ---

func setupCheckout(t *testing.T) (*chi.Mux, *cart.Store, *mockCheckoutStore, *mockHub) {
	t.Helper()
	st := &mockCheckoutStore{}
	hub := &mockHub{}
	carts := cart.NewStore()
	svc := service.NewCheckoutService(st, wa.ValidatePhone)
	h := handler.NewCheckoutHandler(svc, carts, hub, "2348160860973")
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, carts, st, hub
}

func fillCart(carts *cart.Store) uuid.UUID {
	sid := uuid.New()
	carts.AddItem(sid, cart.Item{ID: "meat-pie", Name: "Meat Pie", Price: decimal.NewFromInt(1500)})
	carts.AddItem(sid, cart.Item{ID: "meat-pie", Name: "Meat Pie", Price: decimal.NewFromInt(1500)})
	carts.AddItem(sid, cart.Item{ID: "egg-roll", Name: "Egg Roll", Price: decimal.NewFromInt(1000)})
	return sid
}

func doCheckout(t *testing.T, router http.Handler, sid uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if sid != uuid.Nil {
		req.AddCookie(&http.Cookie{Name: "cart_session", Value: sid.String()})
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func validCheckoutBody() map[string]string {
	return map[string]string{
		"customer_name": "Ada Obi",
		"phone":         "08160860973",
		"address":       "12 Allen Avenue, Ikeja, Lagos",
	}
}

// --- Tests ---

func TestCheckout_Valid(t *testing.T) {
	router, carts, st, hub := setupCheckout(t)
	sid := fillCart(carts)

	rr := doCheckout(t, router, sid, validCheckoutBody())

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	order := resp["order"].(map[string]interface{})
	if order["status"] != "pending" {
		t.Errorf("status = %v, want pending", order["status"])
	}
	if order["total"] != "4000.00" {
		t.Errorf("total = %v, want 4000.00", order["total"])
	}
	if !strings.HasPrefix(order["order_id"].(string), "ORD-") {
		t.Errorf("order_id = %v", order["order_id"])
	}
	if len(order["items"].([]interface{})) != 2 {
		t.Errorf("items = %d lines, want 2", len(order["items"].([]interface{})))
	}

	link := resp["whatsapp_link"].(string)
	if !strings.HasPrefix(link, "https://wa.me/2348160860973?text=") {
		t.Errorf("whatsapp_link = %q", link)
	}
	confirmation := resp["confirmation_link"].(string)
	if !strings.HasPrefix(confirmation, "https://wa.me/2348160860973?text=") {
		t.Errorf("confirmation_link = %q", confirmation)
	}

	if len(st.orders) != 1 {
		t.Fatalf("stored orders = %d, want 1", len(st.orders))
	}
	if carts.Count(sid) != 0 {
		t.Error("cart not cleared after checkout")
	}
	if len(hub.events) != 1 || hub.events[0].Type != "order.created" {
		t.Errorf("broadcast events = %+v, want one order.created", hub.events)
	}
}

func TestCheckout_ValidationErrors(t *testing.T) {
	router, carts, st, _ := setupCheckout(t)
	sid := fillCart(carts)

	rr := doCheckout(t, router, sid, map[string]string{
		"customer_name": "A",
		"phone":         "12345",
		"address":       "short",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeResponse(t, rr)
	if resp["error"] != "validation failed" {
		t.Errorf("error = %v", resp["error"])
	}
	fields := resp["fields"].(map[string]interface{})
	for _, f := range []string{"customer_name", "phone", "address"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing field error for %q: %v", f, fields)
		}
	}

	if len(st.orders) != 0 {
		t.Error("order created despite validation failure")
	}
	// The cart survives a failed checkout.
	if carts.Count(sid) == 0 {
		t.Error("cart cleared on validation failure")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	router, _, _, _ := setupCheckout(t)

	rr := doCheckout(t, router, uuid.Nil, validCheckoutBody())

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeResponse(t, rr)
	fields := resp["fields"].(map[string]interface{})
	if _, ok := fields["items"]; !ok {
		t.Errorf("missing items error: %v", fields)
	}
}

func TestCheckout_InvalidBody(t *testing.T) {
	router, _, _, _ := setupCheckout(t)

	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader([]byte("{broken")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
