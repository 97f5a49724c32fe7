package domain

import (
	"testing"

	"brasserie/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestStaffDirectory_Recipients(t *testing.T) {
	dir := NewStaffDirectory(map[string]string{
		"MANAGER":   "gerant@brasserie.fr",
		"WAITER":    "salle@brasserie.fr",
		"BARTENDER": "salle@brasserie.fr",
		"KITCHEN":   "",
	})

	tests := []struct {
		name string
		kind events.NotificationType
		want []string
	}{
		{name: "new reservation", kind: events.NewReservation, want: []string{"gerant@brasserie.fr", "salle@brasserie.fr"}},
		{name: "cancellation goes to the manager", kind: events.ReservationCancelled, want: []string{"gerant@brasserie.fr"}},
		{name: "shared mailbox is listed once", kind: events.NewOrder, want: []string{"salle@brasserie.fr"}},
		{name: "drinks", kind: events.DrinksOrder, want: []string{"salle@brasserie.fr"}},
		{name: "kitchen has no address", kind: events.DishToPrepare, want: nil},
		{name: "customer confirmation has no staff rule", kind: events.ReservationConfirmation, want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, dir.Recipients(testCase.kind))
		})
	}
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []events.StaffRole{events.Waiter, events.Kitchen, events.Bartender}, RolesFor(events.NewOrder))
	assert.Empty(t, RolesFor(events.ReservationConfirmation))
}
