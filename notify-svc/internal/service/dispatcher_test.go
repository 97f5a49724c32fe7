package service_test

import (
	"context"
	"errors"
	"testing"

	"brasserie/internal/events"
	"brasserie/notify-svc/internal/domain"
	"brasserie/notify-svc/internal/mocks"
	"brasserie/notify-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDispatcher(t *testing.T, staff map[string]string) (*service.Dispatcher, *mocks.Mailer) {
	t.Helper()
	r, err := service.NewRenderer()
	require.NoError(t, err)
	mailer := mocks.NewMailer(t)
	return service.NewDispatcher(mailer, r, domain.NewStaffDirectory(staff), zap.NewNop().Sugar()), mailer
}

var fullStaff = map[string]string{
	"MANAGER":   "gerant@brasserie.fr",
	"WAITER":    "salle@brasserie.fr",
	"BARTENDER": "bar@brasserie.fr",
	"KITCHEN":   "cuisine@brasserie.fr",
}

func TestDispatcher_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		in      events.Notification
		staff   map[string]string
		wantTo  []string
		wantBcc []string
	}{
		{
			name:   "confirmation goes to the customer",
			in:     events.Notification{Type: events.ReservationConfirmation, Reservation: jeanDupont()},
			staff:  fullStaff,
			wantTo: []string{"jean@example.com"},
		},
		{
			name:    "new reservation is a staff broadcast",
			in:      events.Notification{Type: events.NewReservation, Reservation: jeanDupont()},
			staff:   fullStaff,
			wantBcc: []string{"gerant@brasserie.fr", "salle@brasserie.fr"},
		},
		{
			name:    "new order reaches the floor, kitchen and bar",
			in:      events.Notification{Type: events.NewOrder, Order: tableFourOrder()},
			staff:   fullStaff,
			wantBcc: []string{"salle@brasserie.fr", "cuisine@brasserie.fr", "bar@brasserie.fr"},
		},
		{
			name:    "drinks go to the bar",
			in:      events.Notification{Type: events.DrinksOrder, Order: tableFourOrder()},
			staff:   fullStaff,
			wantBcc: []string{"bar@brasserie.fr"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			d, mailer := newDispatcher(t, testCase.staff)
			mailer.On("Send", mock.Anything, mock.MatchedBy(func(m domain.Mail) bool {
				return assert.ObjectsAreEqual(testCase.wantTo, m.To) &&
					assert.ObjectsAreEqual(testCase.wantBcc, m.Bcc) &&
					m.Subject != "" && m.Text != "" && m.HTML != ""
			})).Return(nil).Once()

			require.NoError(t, d.Dispatch(context.Background(), testCase.in))
		})
	}
}

func TestDispatcher_SkipsWithoutRecipients(t *testing.T) {
	d, mailer := newDispatcher(t, map[string]string{"MANAGER": "gerant@brasserie.fr"})

	require.NoError(t, d.Dispatch(context.Background(), events.Notification{Type: events.DishToPrepare, Order: tableFourOrder()}))

	res := jeanDupont()
	res.CustomerEmail = ""
	require.NoError(t, d.Dispatch(context.Background(), events.Notification{Type: events.ReservationConfirmation, Reservation: res}))

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcher_SendFailure(t *testing.T) {
	d, mailer := newDispatcher(t, fullStaff)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed")).Once()

	err := d.Dispatch(context.Background(), events.Notification{Type: events.ReservationCancelled, Reservation: jeanDupont()})
	assert.ErrorContains(t, err, "send RESERVATION_CANCELLED")
}

func TestDispatcher_HandleMessage(t *testing.T) {
	d, mailer := newDispatcher(t, fullStaff)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m domain.Mail) bool {
		return m.Subject == "🍹 Commande boissons - Table 4"
	})).Return(nil).Once()

	body := `{"type":"DRINKS_ORDER","order":{"id":3,"orderNumber":"CMD-20250301-ABC123","tableNumber":4,"items":[{"name":"Café","quantity":1}]}}`
	require.NoError(t, d.HandleMessage(context.Background(), kafka.Message{Value: []byte(body)}))

	err := d.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"type":"ORDER_READY"}`)})
	assert.Error(t, err)
}
