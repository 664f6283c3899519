package booking

import "errors"

// Kind classifies booking failures so callers can tell an invalid request
// from a lost race from a missing record. Anything without a kind is a
// system error.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindPolicy     Kind = "policy"
	KindNotFound   Kind = "not_found"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func ErrPolicy(code, message string) error {
	return &Error{Kind: KindPolicy, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// KindOf reports the kind of err, or false for system errors.
func KindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ErrSlotTaken is the conflict returned when a requested slot overlaps an
// active booking, whether caught by the scan or by a racing writer.
func ErrSlotTaken() error {
	return ErrConflict("slot_taken", "slot already booked")
}
