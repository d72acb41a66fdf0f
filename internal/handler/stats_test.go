package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/success-meals/api/internal/enum"
	"github.com/success-meals/api/internal/handler"
)

func setupStatsRouter(st *mockOrderStore) *chi.Mux {
	h := handler.NewStatsHandler(st)
	r := chi.NewRouter()
	r.Get("/admin/stats", h.Stats)
	return r
}

func TestStats_Empty(t *testing.T) {
	router := setupStatsRouter(newMockOrderStore())

	rr := doRequest(t, router, "GET", "/admin/stats", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rr)
	if resp["total"].(float64) != 0 {
		t.Errorf("total = %v, want 0", resp["total"])
	}
	if resp["today_revenue"] != "0.00" {
		t.Errorf("today_revenue = %v, want 0.00", resp["today_revenue"])
	}
	if resp["today_revenue_display"] != "₦0" {
		t.Errorf("today_revenue_display = %v, want ₦0", resp["today_revenue_display"])
	}
}

func TestStats_CountsAndRevenue(t *testing.T) {
	st := newMockOrderStore()
	now := time.Now()
	seedOrder(t, st, "ORD-1", enum.OrderStatusPending, now)
	seedOrder(t, st, "ORD-2", enum.OrderStatusPreparing, now)
	seedOrder(t, st, "ORD-3", enum.OrderStatusReady, now)
	seedOrder(t, st, "ORD-4", enum.OrderStatusCompleted, now)
	seedOrder(t, st, "ORD-5", enum.OrderStatusCompleted, now.AddDate(0, 0, -3))
	router := setupStatsRouter(st)

	rr := doRequest(t, router, "GET", "/admin/stats", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rr)
	if resp["total"].(float64) != 5 {
		t.Errorf("total = %v, want 5", resp["total"])
	}
	if resp["pending"].(float64) != 1 {
		t.Errorf("pending = %v, want 1", resp["pending"])
	}
	if resp["preparing"].(float64) != 1 {
		t.Errorf("preparing = %v, want 1", resp["preparing"])
	}
	if resp["ready"].(float64) != 1 {
		t.Errorf("ready = %v, want 1", resp["ready"])
	}
	if resp["completed"].(float64) != 2 {
		t.Errorf("completed = %v, want 2", resp["completed"])
	}
	// Only the four orders placed today count toward today's figures.
	if resp["today_orders"].(float64) != 4 {
		t.Errorf("today_orders = %v, want 4", resp["today_orders"])
	}
	if resp["today_revenue"] != "16000.00" {
		t.Errorf("today_revenue = %v, want 16000.00", resp["today_revenue"])
	}
	if resp["today_revenue_display"] != "₦16,000" {
		t.Errorf("today_revenue_display = %v, want ₦16,000", resp["today_revenue_display"])
	}
}

func TestStats_BadLimit(t *testing.T) {
	router := setupStatsRouter(newMockOrderStore())

	rr := doRequest(t, router, "GET", "/admin/stats?limit=-5", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
