package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brasserie/restaurant-svc/internal/domain"
)

// reservationRequest is the booking form as the front end sends it.
// partySize may arrive as a number or a numeric string.
type reservationRequest struct {
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	Date            string      `json:"date"`
	PartySize       json.Number `json:"partySize"`
	SpecialRequests string      `json:"specialRequests"`
	TableID         int         `json:"tableId"`
	Time            string      `json:"time"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" || req.Date == "" || req.PartySize == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid date", "date must be an ISO 8601 date or datetime")
		return
	}
	guests, err := strconv.Atoi(req.PartySize.String())
	if err != nil || guests < 1 {
		writeError(w, http.StatusBadRequest, "Invalid party size", "partySize must be a positive integer")
		return
	}

	res, err := h.Reservations.Create(r.Context(), domain.CreateReservationInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          date,
		Time:          req.Time,
		Guests:        guests,
		TableID:       req.TableID,
		Notes:         req.SpecialRequests,
	})
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "reservation": res})
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Reservations.List(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": res})
}

func (h *Handler) reservationAction(action domain.ReservationAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		res, err := h.Reservations.Transition(r.Context(), id, action)
		if err != nil {
			writeDomainError(w, r, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "reservation": res})
	}
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Reservations.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
