package service

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"brasserie/internal/events"
	"brasserie/notify-svc/internal/domain"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var weekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FrenchDate formats a booking day and slot the way the dining room reads
// them, e.g. "samedi 1 mars 2025 à 19:00".
func FrenchDate(day time.Time, slot string) string {
	s := fmt.Sprintf("%s %d %s %d", weekdays[day.Weekday()], day.Day(), months[day.Month()-1], day.Year())
	if slot != "" {
		s += " à " + slot
	}
	return s
}

type mailView struct {
	Reservation *events.ReservationPayload
	Order       *events.OrderPayload
	When        string
}

// Renderer turns a notification into a subject plus text and HTML bodies.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

func isReservationType(t events.NotificationType) bool {
	switch t {
	case events.ReservationConfirmation, events.NewReservation, events.ReservationCancelled:
		return true
	}
	return false
}

func subject(n events.Notification) string {
	switch n.Type {
	case events.ReservationConfirmation:
		return "Confirmation de réservation - " + n.Reservation.CustomerName
	case events.NewReservation:
		return "🆕 Nouvelle réservation - " + n.Reservation.CustomerName
	case events.ReservationCancelled:
		return "❌ Réservation annulée - " + n.Reservation.CustomerName
	case events.NewOrder:
		return fmt.Sprintf("🍽️ Nouvelle commande - Table %d", n.Order.TableNumber)
	case events.DrinksOrder:
		return fmt.Sprintf("🍹 Commande boissons - Table %d", n.Order.TableNumber)
	default:
		return fmt.Sprintf("👨‍🍳 Plats à préparer - Table %d", n.Order.TableNumber)
	}
}

func (r *Renderer) Render(n events.Notification) (domain.Mail, error) {
	if !n.Type.Valid() {
		return domain.Mail{}, fmt.Errorf("unknown notification type %q", n.Type)
	}

	view := mailView{Reservation: n.Reservation, Order: n.Order}
	if isReservationType(n.Type) {
		if n.Reservation == nil {
			return domain.Mail{}, fmt.Errorf("%s: %w", n.Type, domain.ErrMissingPayload)
		}
		view.When = FrenchDate(n.Reservation.Date, n.Reservation.Time)
	} else if n.Order == nil {
		return domain.Mail{}, fmt.Errorf("%s: %w", n.Type, domain.ErrMissingPayload)
	}

	name := strings.ToLower(string(n.Type))

	var text bytes.Buffer
	if err := r.text.ExecuteTemplate(&text, name+".txt", view); err != nil {
		return domain.Mail{}, fmt.Errorf("render %s text: %w", n.Type, err)
	}
	var html bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", view); err != nil {
		return domain.Mail{}, fmt.Errorf("render %s html: %w", n.Type, err)
	}

	return domain.Mail{
		Subject: subject(n),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
