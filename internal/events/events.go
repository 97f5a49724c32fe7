// Package events holds the message contract shared by the services that talk
// over Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	NotificationsTopic = "restaurant-notifications"
	OrderEventsTopic   = "restaurant-order-events"
)

type NotificationType string

const (
	ReservationConfirmation NotificationType = "RESERVATION_CONFIRMATION"
	NewReservation          NotificationType = "NEW_RESERVATION"
	ReservationCancelled    NotificationType = "RESERVATION_CANCELLED"
	NewOrder                NotificationType = "NEW_ORDER"
	DrinksOrder             NotificationType = "DRINKS_ORDER"
	DishToPrepare           NotificationType = "DISH_TO_PREPARE"
)

func (t NotificationType) Valid() bool {
	switch t {
	case ReservationConfirmation, NewReservation, ReservationCancelled, NewOrder, DrinksOrder, DishToPrepare:
		return true
	}
	return false
}

type StaffRole string

const (
	Manager   StaffRole = "MANAGER"
	Waiter    StaffRole = "WAITER"
	Bartender StaffRole = "BARTENDER"
	Kitchen   StaffRole = "KITCHEN"
)

type ReservationPayload struct {
	ID            int       `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time"`
	Guests        int       `json:"guests"`
	TableNumber   int       `json:"tableNumber,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderPayload struct {
	ID          int        `json:"id"`
	OrderNumber string     `json:"orderNumber"`
	TableNumber int        `json:"tableNumber"`
	Items       []LineItem `json:"items"`
}

// Notification is a request for the notification service to tell someone
// about something. Exactly one of Reservation and Order is set.
type Notification struct {
	Type        NotificationType    `json:"type"`
	Reservation *ReservationPayload `json:"reservation,omitempty"`
	Order       *OrderPayload       `json:"order,omitempty"`
	OccurredAt  time.Time           `json:"occurredAt"`
}

func (n Notification) Key() string {
	switch {
	case n.Order != nil:
		return fmt.Sprintf("order-%d", n.Order.ID)
	case n.Reservation != nil:
		return fmt.Sprintf("reservation-%d", n.Reservation.ID)
	}
	return string(n.Type)
}

func DecodeNotification(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return n, fmt.Errorf("decode notification: %w", err)
	}
	if !n.Type.Valid() {
		return n, fmt.Errorf("unknown notification type %q", n.Type)
	}
	return n, nil
}

type OrderEventType string

const (
	OrderCreated       OrderEventType = "order.created"
	OrderStatusChanged OrderEventType = "order.status_changed"
	PaymentRecorded    OrderEventType = "payment.recorded"
)

type OrderEventItem struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// OrderEvent feeds the analytics counters.
type OrderEvent struct {
	Type          OrderEventType   `json:"type"`
	OrderID       int              `json:"orderId"`
	RestaurantID  int              `json:"restaurantId"`
	Status        string           `json:"status,omitempty"`
	Items         []OrderEventItem `json:"items,omitempty"`
	Amount        float64          `json:"amount,omitempty"`
	Tip           float64          `json:"tip,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("decode order event: %w", err)
	}
	return e, nil
}
