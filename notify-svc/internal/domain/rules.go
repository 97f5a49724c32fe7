package domain

import "brasserie/internal/events"

// staffRules lists which staff roles hear about each notification type.
// Customer confirmations are addressed directly and have no rule.
var staffRules = map[events.NotificationType][]events.StaffRole{
	events.NewReservation:       {events.Manager, events.Waiter},
	events.ReservationCancelled: {events.Manager},
	events.NewOrder:             {events.Waiter, events.Kitchen, events.Bartender},
	events.DrinksOrder:          {events.Bartender},
	events.DishToPrepare:        {events.Kitchen},
}

func RolesFor(t events.NotificationType) []events.StaffRole {
	return staffRules[t]
}

// StaffDirectory maps a role to its mailbox. Roles without an address are
// left out.
type StaffDirectory map[events.StaffRole]string

func NewStaffDirectory(byRole map[string]string) StaffDirectory {
	d := make(StaffDirectory, len(byRole))
	for role, addr := range byRole {
		if addr != "" {
			d[events.StaffRole(role)] = addr
		}
	}
	return d
}

// Recipients resolves the staff addresses for t, in rule order and without
// duplicates.
func (d StaffDirectory) Recipients(t events.NotificationType) []string {
	var out []string
	seen := make(map[string]bool)
	for _, role := range RolesFor(t) {
		addr := d[role]
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}
