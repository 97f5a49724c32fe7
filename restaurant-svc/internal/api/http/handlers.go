package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"brasserie/restaurant-svc/internal/domain"
	"brasserie/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Catalog      service.CatalogServiceInterface
	Tables       service.TableServiceInterface
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Payments     service.PaymentServiceInterface
	Logger       *zap.SugaredLogger
}

func NewHandler(catalog service.CatalogServiceInterface, tables service.TableServiceInterface,
	orders service.OrderServiceInterface, reservations service.ReservationServiceInterface,
	payments service.PaymentServiceInterface, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		Catalog:      catalog,
		Tables:       tables,
		Orders:       orders,
		Reservations: reservations,
		Payments:     payments,
		Logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")

	r.HandleFunc("/api/categories", h.createCategory).Methods("POST")
	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")

	r.HandleFunc("/api/products", h.createProduct).Methods("POST")
	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.updateProduct).Methods("PUT")
	r.HandleFunc("/api/products/{id}/availability", h.setProductAvailability).Methods("PATCH")

	r.HandleFunc("/api/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/tables", h.getTables).Methods("GET")
	r.HandleFunc("/api/tables/{id}/status", h.updateTableStatus).Methods("PATCH")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/start", h.orderAction(domain.ActionStartPreparation)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/ready", h.orderAction(domain.ActionMarkReady)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/serve", h.orderAction(domain.ActionMarkServed)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/cancel", h.orderAction(domain.ActionCancelOrder)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/payment", h.createPayment).Methods("POST")
	r.HandleFunc("/api/orders/{id}/payment", h.getPayment).Methods("GET")
	r.HandleFunc("/api/kitchen/queue", h.stationQueue(domain.StationKitchen)).Methods("GET")
	r.HandleFunc("/api/bar/queue", h.stationQueue(domain.StationBar)).Methods("GET")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations", h.getReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.getReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.deleteReservation).Methods("DELETE")
	r.HandleFunc("/api/reservations/{id}/confirm", h.reservationAction(domain.ActionConfirm)).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/cancel", h.reservationAction(domain.ActionCancel)).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/complete", h.reservationAction(domain.ActionComplete)).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/no-show", h.reservationAction(domain.ActionNoShow)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// login has no user store behind it yet; every attempt is refused.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "Invalid credentials")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameter", name+" must be an integer")
		return 0, false
	}
	return v, true
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if !decodeJSON(w, r, &rest) {
		return
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"restaurant": rest})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restaurant": rest})
}

type categoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Order        int    `json:"order"`
	IsActive     *bool  `json:"isActive"`
	RestaurantID int    `json:"restaurantId"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := domain.Category{
		Name:         req.Name,
		Description:  req.Description,
		Order:        req.Order,
		IsActive:     req.IsActive == nil || *req.IsActive,
		RestaurantID: req.RestaurantID,
	}
	if err := h.Catalog.CreateCategory(r.Context(), &c); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": c})
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := queryInt(w, r, "restaurantId")
	if !ok {
		return
	}
	categories, err := h.Catalog.ListCategories(r.Context(), restaurantID)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type productRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	ImageURL        string   `json:"imageUrl"`
	IsAvailable     *bool    `json:"isAvailable"`
	CategoryID      int      `json:"categoryId"`
	RestaurantID    int      `json:"restaurantId"`
	Allergens       []string `json:"allergens"`
	PreparationTime int      `json:"preparationTime"`
}

func (req productRequest) product() domain.Product {
	return domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
		CategoryID:      req.CategoryID,
		RestaurantID:    req.RestaurantID,
		Allergens:       req.Allergens,
		PreparationTime: req.PreparationTime,
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := req.product()
	if err := h.Catalog.CreateProduct(r.Context(), &p); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": p})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := req.product()
	p.ID = id
	if err := h.Catalog.UpdateProduct(r.Context(), &p); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *Handler) setProductAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields", "isAvailable is required")
		return
	}
	p, err := h.Catalog.SetProductAvailability(r.Context(), id, *req.IsAvailable)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	var f domain.ProductFilter
	var ok bool
	if f.Page, ok = queryInt(w, r, "page"); !ok {
		return
	}
	if f.Limit, ok = queryInt(w, r, "limit"); !ok {
		return
	}
	if f.RestaurantID, ok = queryInt(w, r, "restaurantId"); !ok {
		return
	}
	if f.CategoryID, ok = queryInt(w, r, "categoryId"); !ok {
		return
	}
	products, applied, total, err := h.Catalog.ListProducts(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"page":     applied.Page,
		"limit":    applied.Limit,
		"total":    total,
	})
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var t domain.Table
	if !decodeJSON(w, r, &t) {
		return
	}
	if err := h.Tables.Create(r.Context(), &t); err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"table": t})
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := queryInt(w, r, "restaurantId")
	if !ok {
		return
	}
	tables, err := h.Tables.List(r.Context(), restaurantID)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func (h *Handler) updateTableStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status domain.TableStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields", "status is required")
		return
	}
	t, err := h.Tables.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"table": t})
}
