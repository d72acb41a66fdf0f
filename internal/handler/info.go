package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/success-meals/api/internal/wa"
)

const deliveryEstimate = 45 * time.Minute

// InfoHandler serves storefront metadata: opening hours, the delivery
// estimate, and the general contact link.
type InfoHandler struct {
	waNumber    string
	openingHour int
	closingHour int
	now         func() time.Time
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(waNumber string, openingHour, closingHour int) *InfoHandler {
	return &InfoHandler{
		waNumber:    waNumber,
		openingHour: openingHour,
		closingHour: closingHour,
		now:         time.Now,
	}
}

// RegisterRoutes registers the info endpoints. Mounted at the API root.
func (h *InfoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/info", h.Info)
	r.Get("/contact-link", h.ContactLink)
}

type infoResponse struct {
	OpenNow           bool   `json:"open_now"`
	OpensAt           string `json:"opens_at"`
	ClosesAt          string `json:"closes_at"`
	EstimatedDelivery string `json:"estimated_delivery"`
	WhatsAppNumber    string `json:"whatsapp_number"`
}

// Info returns whether the business is currently open and when a new
// order placed right now would arrive.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, infoResponse{
		OpenNow:           h.openNow(now),
		OpensAt:           fmt.Sprintf("%02d:00", h.openingHour),
		ClosesAt:          fmt.Sprintf("%02d:00", h.closingHour),
		EstimatedDelivery: now.Add(deliveryEstimate).Format("03:04 PM"),
		WhatsAppNumber:    h.waNumber,
	})
}

// ContactLink returns the wa.me link for the business number, with
// optional ?text= pre-filled.
func (h *InfoHandler) ContactLink(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"link": wa.ContactLink(h.waNumber, r.URL.Query().Get("text")),
	})
}

func (h *InfoHandler) openNow(now time.Time) bool {
	return now.Hour() >= h.openingHour && now.Hour() < h.closingHour
}
