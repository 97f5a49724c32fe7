package httpapi

import (
	"net/http"

	"brasserie/restaurant-svc/internal/domain"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateOrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	order, err := h.Orders.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	var status domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseOrderStatus(raw)
		if err != nil {
			writeDomainError(w, r, h.Logger, err)
			return
		}
		status = parsed
	}
	orders, err := h.Orders.List(r.Context(), status)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) orderAction(action domain.OrderAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		order, err := h.Orders.Transition(r.Context(), id, action)
		if err != nil {
			writeDomainError(w, r, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
	}
}

func (h *Handler) stationQueue(station domain.Station) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := h.Orders.Queue(r.Context(), station)
		if err != nil {
			writeDomainError(w, r, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	qr, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	if len(qr) == 0 {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(qr)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.PaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	payment, err := h.Payments.Record(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "payment": payment})
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	payment, err := h.Payments.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment": payment})
}
