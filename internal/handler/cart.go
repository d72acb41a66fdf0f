package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/catalog"
	"github.com/success-meals/api/internal/store"
)

const cartCookieName = "cart_session"

// CartMenuStore resolves the items shoppers add to their cart.
// Satisfied by *store.Queries; narrow interface for testability.
type CartMenuStore interface {
	GetMenuItem(ctx context.Context, id uuid.UUID) (store.MenuItem, error)
}

// CartHandler manages the shopper's server-side cart session. Prices are
// always resolved from the menu, never taken from the request.
type CartHandler struct {
	carts    *cart.Store
	menu     CartMenuStore
	fallback catalog.Menu
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Store, menu CartMenuStore, fallback catalog.Menu) *CartHandler {
	return &CartHandler{carts: carts, menu: menu, fallback: fallback}
}

// RegisterRoutes registers cart endpoints. Mounted at /cart.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{id}", h.UpdateQuantity)
	r.Delete("/items/{id}", h.RemoveItem)
	r.Delete("/", h.Clear)
}

type addItemRequest struct {
	ID string `json:"id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total string             `json:"total"`
	Count int                `json:"count"`
}

// cartSessionFromRequest reads the cart session from the request cookie
// without minting one.
func cartSessionFromRequest(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(cartCookieName)
	if err != nil {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// sessionID returns the cart session from the request cookie, minting a new
// one (and setting the cookie) when absent or unparseable.
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if id, ok := cartSessionFromRequest(r); ok {
		return id
	}
	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *CartHandler) respond(w http.ResponseWriter, sid uuid.UUID) {
	lines := h.carts.Lines(sid)
	resp := cartResponse{
		Items: make([]cartLineResponse, 0, len(lines)),
		Total: h.carts.Total(sid).StringFixed(2),
		Count: h.carts.Count(sid),
	}
	for _, ln := range lines {
		resp.Items = append(resp.Items, cartLineResponse{
			ID:       ln.ID,
			Name:     ln.Name,
			Price:    ln.Price.StringFixed(2),
			Image:    ln.Image,
			Quantity: ln.Quantity,
			Subtotal: ln.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))).StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns the current cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.sessionID(w, r))
}

// AddItem puts one unit of a menu item into the cart, or bumps the
// quantity when the item is already there. The item is looked up by store
// ID first, then by catalog slug, so carts work against either menu source.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item id is required"})
		return
	}

	item, ok, err := h.resolveItem(r.Context(), req.ID)
	if err != nil {
		log.Printf("ERROR: resolve cart item %s: %v", req.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}
	// Variable-priced items are quoted over chat, not carted.
	if item.Price.IsZero() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "item price is set on request; contact us to order"})
		return
	}

	sid := h.sessionID(w, r)
	h.carts.AddItem(sid, item)
	h.respond(w, sid)
}

// UpdateQuantity sets the quantity of a cart line. Zero or negative
// removes the line; unknown lines are a no-op.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sid := h.sessionID(w, r)
	h.carts.UpdateQuantity(sid, chi.URLParam(r, "id"), req.Quantity)
	h.respond(w, sid)
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	h.carts.RemoveItem(sid, chi.URLParam(r, "id"))
	h.respond(w, sid)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	h.carts.Clear(sid)
	h.respond(w, sid)
}

func (h *CartHandler) resolveItem(ctx context.Context, id string) (cart.Item, bool, error) {
	if itemID, err := uuid.Parse(id); err == nil {
		m, err := h.menu.GetMenuItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return cart.Item{}, false, nil
			}
			return cart.Item{}, false, err
		}
		item := cart.Item{ID: m.ID.String(), Name: m.Name, Price: numericToDecimal(m.Price)}
		if m.Image.Valid {
			item.Image = m.Image.String
		}
		return item, true, nil
	}

	it, _, ok := h.fallback.Find(id)
	if !ok {
		return cart.Item{}, false, nil
	}
	return cart.Item{ID: it.ID, Name: it.Name, Price: it.Price, Image: it.Image}, true, nil
}
