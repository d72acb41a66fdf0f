package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/enum"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/wa"
)

const (
	defaultStatsLimit = 200
	maxStatsLimit     = 1000
)

// StatsStore defines the database methods needed by the stats handler.
// Satisfied by *store.Queries.
type StatsStore interface {
	ListOrders(ctx context.Context, limit int32) ([]store.Order, error)
}

// StatsHandler serves the admin dashboard counters. Figures are derived
// from the fetched window of recent orders, not from aggregate queries,
// so they match exactly what the console is showing.
type StatsHandler struct {
	store StatsStore
	now   func() time.Time
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store StatsStore) *StatsHandler {
	return &StatsHandler{store: store, now: time.Now}
}

type statsResponse struct {
	Total               int    `json:"total"`
	Pending             int    `json:"pending"`
	Preparing           int    `json:"preparing"`
	Ready               int    `json:"ready"`
	Completed           int    `json:"completed"`
	TodayOrders         int    `json:"today_orders"`
	TodayRevenue        string `json:"today_revenue"`
	TodayRevenueDisplay string `json:"today_revenue_display"`
}

// Stats returns counts per status plus today's order count and revenue.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultStatsLimit)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		if n > maxStatsLimit {
			n = maxStatsLimit
		}
		limit = int32(n)
	}

	orders, err := h.store.ListOrders(r.Context(), limit)
	if err != nil {
		log.Printf("ERROR: list orders for stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	now := h.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	resp := statsResponse{Total: len(orders)}
	todayRevenue := decimal.Zero
	for _, o := range orders {
		switch o.Status {
		case enum.OrderStatusPending:
			resp.Pending++
		case enum.OrderStatusPreparing:
			resp.Preparing++
		case enum.OrderStatusReady:
			resp.Ready++
		case enum.OrderStatusCompleted:
			resp.Completed++
		}
		if !o.CreatedAt.Before(startOfDay) {
			resp.TodayOrders++
			todayRevenue = todayRevenue.Add(numericToDecimal(o.Total))
		}
	}
	resp.TodayRevenue = todayRevenue.StringFixed(2)
	resp.TodayRevenueDisplay = wa.FormatNaira(todayRevenue)

	writeJSON(w, http.StatusOK, resp)
}
