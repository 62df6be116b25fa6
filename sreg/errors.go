package sreg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when a raw birthdate is not YYYY-MM-DD.
	ErrInvalidFormat = errors.New("sreg: invalid format")
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("sreg: decode error")
	// ErrNoEmail is returned by MailAddress when no email is set.
	ErrNoEmail = errors.New("sreg: email not set")
	// ErrInvalidDate is returned when a structured birthdate cannot be written as YYYY-MM-DD.
	ErrInvalidDate = errors.New("sreg: invalid date")
	// ErrUnknownField is returned when a request names a field outside the fixed set.
	ErrUnknownField = errors.New("sreg: unknown field")
	// ErrNilResponse is returned by caches asked to store a nil response.
	ErrNilResponse = errors.New("sreg: nil response")
)

// DecodeError reports a wire value a field codec does not recognise.
type DecodeError struct {
	Field string
	Value string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sreg: cannot decode %s value %q", e.Field, e.Value)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
