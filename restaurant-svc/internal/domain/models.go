package domain

import "time"

type Restaurant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Order        int    `json:"order"`
	IsActive     bool   `json:"isActive"`
	RestaurantID int    `json:"restaurantId"`
}

type Product struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	ImageURL        string    `json:"imageUrl"`
	IsAvailable     bool      `json:"isAvailable"`
	CategoryID      int       `json:"categoryId"`
	CategoryName    string    `json:"categoryName,omitempty"`
	RestaurantID    int       `json:"restaurantId"`
	Allergens       []string  `json:"allergens"`
	PreparationTime int       `json:"preparationTime"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ProductFilter struct {
	RestaurantID int
	CategoryID   int
	Page         int
	Limit        int
}

type Table struct {
	ID           int         `json:"id"`
	RestaurantID int         `json:"restaurantId"`
	Number       int         `json:"number"`
	Capacity     int         `json:"capacity"`
	Status       TableStatus `json:"status"`
	PositionX    float64     `json:"positionX"`
	PositionY    float64     `json:"positionY"`
	Section      string      `json:"section"`
}

type Order struct {
	ID           int         `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	RestaurantID int         `json:"restaurantId"`
	TableID      int         `json:"tableId"`
	TableNumber  int         `json:"tableNumber"`
	Items        []OrderItem `json:"items"`
	Notes        string      `json:"notes"`
	Subtotal     float64     `json:"subtotal"`
	TaxAmount    float64     `json:"taxAmount"`
	Discount     float64     `json:"discount"`
	Tip          float64     `json:"tip"`
	TotalAmount  float64     `json:"totalAmount"`
	Status       OrderStatus `json:"status"`
	Payment      *Payment    `json:"payment,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	ServedAt     *time.Time  `json:"servedAt,omitempty"`
}

// OrderItem keeps a snapshot of the product as it was when the item was
// added. UnitPrice never follows later price changes.
type OrderItem struct {
	ID           int     `json:"id"`
	OrderID      int     `json:"orderId"`
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	CategoryName string  `json:"categoryName"`
	Station      Station `json:"station"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Notes        string  `json:"notes,omitempty"`
}

type Reservation struct {
	ID            int               `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	TableID       int               `json:"tableId"`
	TableNumber   int               `json:"tableNumber,omitempty"`
	Date          time.Time         `json:"date"`
	Time          string            `json:"time"`
	Guests        int               `json:"guests"`
	Status        ReservationStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type SplitPayment struct {
	Method PaymentMethod `json:"method"`
	Amount float64       `json:"amount"`
}

type Payment struct {
	ID            int            `json:"id"`
	OrderID       int            `json:"orderId"`
	Amount        float64        `json:"amount"`
	Method        PaymentMethod  `json:"method"`
	CashReceived  *float64       `json:"cashReceived,omitempty"`
	Change        *float64       `json:"change,omitempty"`
	SplitPayments []SplitPayment `json:"splitPayments,omitempty"`
	Tip           float64        `json:"tip"`
	Status        PaymentStatus  `json:"status"`
	TransactionID string         `json:"transactionId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type OrderItemInput struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

type CreateOrderInput struct {
	TableID  int              `json:"tableId"`
	Items    []OrderItemInput `json:"items"`
	Notes    string           `json:"notes"`
	Discount float64          `json:"discount"`
	Tip      float64          `json:"tip"`
}

type CreateReservationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          time.Time
	Time          string
	Guests        int
	TableID       int
	Notes         string
}

type PaymentInput struct {
	Method        PaymentMethod  `json:"method"`
	Amount        float64        `json:"amount"`
	Tip           float64        `json:"tip"`
	CashReceived  *float64       `json:"cashReceived"`
	SplitPayments []SplitPayment `json:"splitPayments"`
}
