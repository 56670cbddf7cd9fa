package booking

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions lists the statuses reachable from each status. Terminal statuses have none.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: nil,
	StatusCompleted: nil,
}

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Active reports whether the booking still holds its slot.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CanTransition checks a move from one status to another. Staying put is always allowed.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
