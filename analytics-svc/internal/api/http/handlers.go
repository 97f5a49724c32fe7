package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"brasserie/analytics-svc/internal/domain"
	"brasserie/analytics-svc/internal/service"
	"brasserie/internal/analytics"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Logger    *zap.SugaredLogger
}

func NewHandler(svc service.AnalyticsInterface, logger *zap.SugaredLogger) *Handler {
	return &Handler{Analytics: svc, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/analytics/top-alltime", h.getTopAllTime).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/analytics", h.getSummary).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/cash-register", h.getCashRegister).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/peak-hours", h.getPeakHours).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseRestaurantID(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("restaurantId is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("restaurantId must be a positive integer, got %q", raw)
	}
	return id, nil
}

// parseDay reads a YYYY-MM-DD query value, defaulting to today.
func (h *Handler) parseDay(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.Analytics.Today(), nil
	}
	day, err := time.Parse(analytics.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted YYYY-MM-DD, got %q", raw)
	}
	return day, nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must be a non-negative amount, got %q", name, raw)
	}
	return amount, nil
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	id, err := parseRestaurantID(r.URL.Query().Get("restaurantId"))
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	top, err := h.Analytics.TopToday(r.Context(), id)
	if err != nil {
		writeInternal(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	id, err := parseRestaurantID(r.URL.Query().Get("restaurantId"))
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	top, err := h.Analytics.TopAllTime(r.Context(), id)
	if err != nil {
		writeInternal(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseRestaurantID(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	summary, err := h.Analytics.Summary(r.Context(), id, period)
	if err != nil {
		writeInternal(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getCashRegister(w http.ResponseWriter, r *http.Request) {
	var details []string

	id, err := parseRestaurantID(mux.Vars(r)["restaurantId"])
	if err != nil {
		details = append(details, err.Error())
	}
	day, err := h.parseDay(r)
	if err != nil {
		details = append(details, err.Error())
	}

	q := r.URL.Query()
	opening := decimal.Zero
	if raw := q.Get("openingCash"); raw != "" {
		if opening, err = parseAmount("openingCash", raw); err != nil {
			details = append(details, err.Error())
		}
	}
	var counted *decimal.Decimal
	if raw := q.Get("countedCash"); raw != "" {
		c, err := parseAmount("countedCash", raw)
		if err != nil {
			details = append(details, err.Error())
		}
		counted = &c
	}

	if len(details) > 0 {
		writeBadRequest(w, "Invalid request", details...)
		return
	}

	cr, err := h.Analytics.CashRegister(r.Context(), id, day, opening, counted)
	if err != nil {
		writeInternal(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cr)
}

func (h *Handler) getPeakHours(w http.ResponseWriter, r *http.Request) {
	id, err := parseRestaurantID(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	day, err := h.parseDay(r)
	if err != nil {
		writeBadRequest(w, "Invalid request", err.Error())
		return
	}
	peak, err := h.Analytics.PeakHours(r.Context(), id, day)
	if err != nil {
		writeInternal(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, peak)
}
