package domain

type OrderAction string

const (
	ActionStartPreparation OrderAction = "start_preparation"
	ActionMarkReady        OrderAction = "mark_ready"
	ActionMarkServed       OrderAction = "mark_served"
	ActionCancelOrder      OrderAction = "cancel"
)

var orderTransitions = map[OrderStatus]map[OrderAction]OrderStatus{
	OrderPending: {
		ActionStartPreparation: OrderPreparing,
		ActionCancelOrder:      OrderCancelled,
	},
	OrderPreparing: {
		ActionMarkReady:   OrderReady,
		ActionCancelOrder: OrderCancelled,
	},
	OrderReady: {
		ActionMarkServed:  OrderServed,
		ActionCancelOrder: OrderCancelled,
	},
}

// NextOrderStatus returns the status an order moves to when action is applied
// in status current, or a *TransitionError if the move is not allowed.
func NextOrderStatus(current OrderStatus, action OrderAction) (OrderStatus, error) {
	if next, ok := orderTransitions[current][action]; ok {
		return next, nil
	}
	return current, &TransitionError{Entity: "order", From: string(current), Action: string(action)}
}

type ReservationAction string

const (
	ActionConfirm  ReservationAction = "confirm"
	ActionCancel   ReservationAction = "cancel"
	ActionComplete ReservationAction = "complete"
	ActionNoShow   ReservationAction = "no_show"
)

var reservationTransitions = map[ReservationStatus]map[ReservationAction]ReservationStatus{
	ReservationPending: {
		ActionConfirm:  ReservationConfirmed,
		ActionCancel:   ReservationCancelled,
		ActionComplete: ReservationCompleted,
		ActionNoShow:   ReservationNoShow,
	},
	ReservationConfirmed: {
		ActionCancel:   ReservationCancelled,
		ActionComplete: ReservationCompleted,
		ActionNoShow:   ReservationNoShow,
	},
}

func NextReservationStatus(current ReservationStatus, action ReservationAction) (ReservationStatus, error) {
	if next, ok := reservationTransitions[current][action]; ok {
		return next, nil
	}
	return current, &TransitionError{Entity: "reservation", From: string(current), Action: string(action)}
}

var tableTransitions = map[TableStatus][]TableStatus{
	TableFree:       {TableOccupied, TableReserved},
	TableReserved:   {TableOccupied, TableFree},
	TableOccupied:   {TableNeedsClean, TableFree},
	TableNeedsClean: {TableFree},
}

func CanTransitionTable(from, to TableStatus) bool {
	for _, allowed := range tableTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func CheckTableTransition(from, to TableStatus) error {
	if CanTransitionTable(from, to) {
		return nil
	}
	return &TransitionError{Entity: "table", From: string(from), Action: "move to " + string(to)}
}
