package domain

import (
	"fmt"
	"strings"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "EN_ATTENTE"
	OrderPreparing OrderStatus = "EN_PREPARATION"
	OrderReady     OrderStatus = "PRETE"
	OrderServed    OrderStatus = "SERVIE"
	OrderCancelled OrderStatus = "ANNULEE"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return st, nil
	}
	return "", NewValidationError(fmt.Sprintf("invalid order status %q", s))
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	st, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderServed || s == OrderCancelled
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "EN_ATTENTE"
	ReservationConfirmed ReservationStatus = "CONFIRMEE"
	ReservationCancelled ReservationStatus = "ANNULEE"
	ReservationCompleted ReservationStatus = "TERMINEE"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted, ReservationNoShow:
		return st, nil
	}
	return "", NewValidationError(fmt.Sprintf("invalid reservation status %q", s))
}

func (s *ReservationStatus) UnmarshalText(b []byte) error {
	st, err := ParseReservationStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// IsActive reports whether the reservation still holds its table.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type TableStatus string

const (
	TableFree       TableStatus = "LIBRE"
	TableOccupied   TableStatus = "OCCUPEE"
	TableReserved   TableStatus = "RESERVEE"
	TableNeedsClean TableStatus = "A_NETTOYER"
)

func ParseTableStatus(s string) (TableStatus, error) {
	switch st := TableStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case TableFree, TableOccupied, TableReserved, TableNeedsClean:
		return st, nil
	}
	return "", NewValidationError(fmt.Sprintf("invalid table status %q", s))
}

func (s *TableStatus) UnmarshalText(b []byte) error {
	st, err := ParseTableStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "ESPECES"
	PaymentCard        PaymentMethod = "CARTE_BANCAIRE"
	PaymentCheque      PaymentMethod = "CHEQUE"
	PaymentMealVoucher PaymentMethod = "TICKET_RESTAURANT"
	PaymentMobile      PaymentMethod = "MOBILE"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentCheque, PaymentMealVoucher, PaymentMobile}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("invalid payment method %q", s))
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	pm, err := ParsePaymentMethod(string(b))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

type PaymentStatus string

const (
	PaymentComplete PaymentStatus = "COMPLETE"
	PaymentRefunded PaymentStatus = "REMBOURSE"
)

// Station is where an order item gets prepared.
type Station string

const (
	StationKitchen Station = "kitchen"
	StationBar     Station = "bar"
)

var barKeywords = []string{"boisson", "cocktail", "bar", "vin"}

func StationForCategory(categoryName string) Station {
	name := strings.ToLower(categoryName)
	for _, kw := range barKeywords {
		if strings.Contains(name, kw) {
			return StationBar
		}
	}
	return StationKitchen
}

func ParseStation(s string) (Station, error) {
	switch st := Station(strings.ToLower(strings.TrimSpace(s))); st {
	case StationKitchen, StationBar:
		return st, nil
	}
	return "", NewValidationError(fmt.Sprintf("invalid station %q", s))
}
