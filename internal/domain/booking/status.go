package booking

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCustom    Status = "custom"
)

// ActiveStatuses are the statuses whose sessions occupy a calendar slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transition rules
// ===============================

// CanCancel allows cancellation of pending and confirmed sessions only.
// Custom requests are handled manually downstream and cancelled sessions
// stay cancelled.
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return ErrPolicy("already_cancelled", "session is already cancelled")
	case StatusPending, StatusConfirmed:
		return nil
	default:
		return ErrPolicy("invalid_state", "session cannot be cancelled")
	}
}

// CanConfirm gates the payment-driven pending -> confirmed transition.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrPolicy("invalid_state", "session cannot be confirmed")
	}
	return nil
}

// InitialStatus is the status of a freshly booked session.
func InitialStatus() Status {
	return StatusPending
}
