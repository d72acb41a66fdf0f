package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/catalog"
	"github.com/success-meals/api/internal/enum"
	"github.com/success-meals/api/internal/store"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *store.Queries; narrow interface for testability.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]store.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (store.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg store.CreateMenuItemParams) (store.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg store.UpdateMenuItemParams) (store.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	CountMenuItems(ctx context.Context) (int64, error)
	CountMenuItemsByCategory(ctx context.Context, category string) (int64, error)
}

// MenuHandler handles menu endpoints: the public grouped listing with its
// static-catalog fallback, and the admin CRUD plus one-time seeding.
type MenuHandler struct {
	store    MenuStore
	fallback catalog.Menu
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, fallback catalog.Menu) *MenuHandler {
	return &MenuHandler{store: store, fallback: fallback}
}

// RegisterPublicRoutes registers the storefront listing. Mounted at /menu.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// RegisterAdminRoutes registers menu management endpoints. Mounted at
// /admin/menu inside the authenticated group.
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/seed", h.Seed)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	PriceNote   string `json:"price_note"`
	Type        string `json:"type"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

type menuItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	PriceNote   *string    `json:"price_note"`
	Type        *string    `json:"type"`
	Image       *string    `json:"image"`
	Category    string     `json:"category"`
	Order       int32      `json:"order"`
	OriginalID  *string    `json:"original_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type menuSection struct {
	Category string             `json:"category"`
	Items    []menuItemResponse `json:"items"`
}

type menuResponse struct {
	Snacks menuSection `json:"snacks"`
	Meals  menuSection `json:"meals"`
	Source string      `json:"source"` // "store" or "catalog"
}

type seedRequest struct {
	Force bool `json:"force"`
}

func toMenuItemResponse(m store.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Price:       numericToString(m.Price),
		Category:    m.Category,
		Order:       m.SortOrder,
		CreatedAt:   &m.CreatedAt,
		UpdatedAt:   &m.UpdatedAt,
	}
	if m.PriceNote.Valid {
		resp.PriceNote = &m.PriceNote.String
	}
	if m.Type.Valid {
		resp.Type = &m.Type.String
	}
	if m.Image.Valid {
		resp.Image = &m.Image.String
	}
	if m.OriginalID.Valid {
		resp.OriginalID = &m.OriginalID.String
	}
	return resp
}

func catalogItemResponse(it catalog.Item, category string, order int32) menuItemResponse {
	resp := menuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price.StringFixed(2),
		Category:    category,
		Order:       order,
	}
	if it.PriceNote != "" {
		note := it.PriceNote
		resp.PriceNote = &note
	}
	if it.Type != "" {
		typ := it.Type
		resp.Type = &typ
	}
	if it.Image != "" {
		img := it.Image
		resp.Image = &img
	}
	return resp
}

// --- Handlers ---

// List returns the menu grouped by section, sorted by (category, order).
// When the remote collection is empty the bundled catalog is served
// instead: try remote, fall back to the default. An empty store is not an
// error condition for shoppers.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if len(items) == 0 {
		writeJSON(w, http.StatusOK, h.catalogResponse())
		return
	}

	resp := menuResponse{
		Snacks: menuSection{Category: h.fallback.Snacks.Category, Items: []menuItemResponse{}},
		Meals:  menuSection{Category: h.fallback.Meals.Category, Items: []menuItemResponse{}},
		Source: "store",
	}
	for _, m := range items {
		switch m.Category {
		case enum.CategorySnacks:
			resp.Snacks.Items = append(resp.Snacks.Items, toMenuItemResponse(m))
		case enum.CategoryMeals:
			resp.Meals.Items = append(resp.Meals.Items, toMenuItemResponse(m))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) catalogResponse() menuResponse {
	resp := menuResponse{
		Snacks: menuSection{Category: h.fallback.Snacks.Category, Items: []menuItemResponse{}},
		Meals:  menuSection{Category: h.fallback.Meals.Category, Items: []menuItemResponse{}},
		Source: "catalog",
	}
	for i, it := range h.fallback.Snacks.Items {
		resp.Snacks.Items = append(resp.Snacks.Items, catalogItemResponse(it, enum.CategorySnacks, int32(i)))
	}
	for i, it := range h.fallback.Meals.Items {
		resp.Meals.Items = append(resp.Meals.Items, catalogItemResponse(it, enum.CategoryMeals, int32(i)))
	}
	return resp
}

// Create adds a new menu item at the end of its section.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := h.buildItemParams(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	// Append-at-end: order = current item count in the section.
	count, err := h.store.CountMenuItemsByCategory(r.Context(), req.Category)
	if err != nil {
		log.Printf("ERROR: count menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	params.SortOrder = int32(count)

	item, err := h.store.CreateMenuItem(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// Update overwrites every editable field of an existing item. Editing in
// place keeps the item's position; moving it to the other section appends
// it at that section's end.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	params, errMsg := h.buildItemParams(req)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	current, err := h.store.GetMenuItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: get menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	sortOrder := current.SortOrder
	if req.Category != current.Category {
		count, err := h.store.CountMenuItemsByCategory(r.Context(), req.Category)
		if err != nil {
			log.Printf("ERROR: count menu items: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		sortOrder = int32(count)
	}

	item, err := h.store.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		ID:          itemID,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		PriceNote:   params.PriceNote,
		Type:        params.Type,
		Image:       params.Image,
		Category:    params.Category,
		SortOrder:   sortOrder,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: update menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Delete removes a menu item. Deleting an absent item still succeeds;
// the contract is idempotent deletion.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	if err := h.store.DeleteMenuItem(r.Context(), itemID); err != nil {
		log.Printf("ERROR: delete menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Seed bulk-loads the bundled catalog into the store: the slug ID is kept
// as original_id and items get positional order within their section.
// Seeding a non-empty menu requires force, otherwise every re-run would
// silently duplicate the whole catalog.
func (h *MenuHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	count, err := h.store.CountMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: count menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if count > 0 && !req.Force {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "menu already contains items; pass force to seed anyway",
		})
		return
	}

	created := 0
	sections := []struct {
		category string
		items    []catalog.Item
	}{
		{enum.CategorySnacks, h.fallback.Snacks.Items},
		{enum.CategoryMeals, h.fallback.Meals.Items},
	}
	for _, sec := range sections {
		for i, it := range sec.items {
			var price pgtype.Numeric
			if err := price.Scan(it.Price.StringFixed(2)); err != nil {
				log.Printf("ERROR: scan catalog price for %s: %v", it.ID, err)
				continue
			}
			_, err := h.store.CreateMenuItem(r.Context(), store.CreateMenuItemParams{
				Name:        it.Name,
				Description: it.Description,
				Price:       price,
				PriceNote:   textOrNull(it.PriceNote),
				Type:        textOrNull(it.Type),
				Image:       textOrNull(it.Image),
				Category:    sec.category,
				SortOrder:   int32(i),
				OriginalID:  textOrNull(it.ID),
			})
			if err != nil {
				log.Printf("ERROR: seed menu item %s: %v", it.ID, err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}
			created++
		}
	}

	writeJSON(w, http.StatusCreated, map[string]int{"created": created})
}

// --- Helpers ---

func (h *MenuHandler) buildItemParams(req menuItemRequest) (store.CreateMenuItemParams, string) {
	if req.Name == "" {
		return store.CreateMenuItemParams{}, "name is required"
	}
	if req.Description == "" {
		return store.CreateMenuItemParams{}, "description is required"
	}
	if !enum.IsKnownCategory(req.Category) {
		return store.CreateMenuItemParams{}, "category must be 'snacks' or 'meals'"
	}

	priceStr := req.Price
	if priceStr == "" {
		priceStr = "0"
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		return store.CreateMenuItemParams{}, "price must be a non-negative number"
	}
	// Zero is the variable-pricing sentinel; it needs a note to show instead.
	if price.IsZero() && req.PriceNote == "" {
		return store.CreateMenuItemParams{}, "price_note is required when price is 0"
	}

	var pricePg pgtype.Numeric
	if err := pricePg.Scan(price.StringFixed(2)); err != nil {
		return store.CreateMenuItemParams{}, "price must be a non-negative number"
	}

	return store.CreateMenuItemParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       pricePg,
		PriceNote:   textOrNull(req.PriceNote),
		Type:        textOrNull(req.Type),
		Image:       textOrNull(req.Image),
		Category:    req.Category,
	}, ""
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
