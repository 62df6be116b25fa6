package sreg

import (
	"fmt"
	"regexp"

	"cloud.google.com/go/civil"
)

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	minYear = 1
	maxYear = 9999
)

// birthDate stores one canonical form: the resolved date, or the raw string
// when it passed the syntax check but names no calendar date.
type birthDate struct {
	date       *civil.Date
	unresolved *string
}

func (b birthDate) raw() *string {
	if b.date != nil {
		s := FormatBirthDate(*b.date)
		return &s
	}
	if b.unresolved != nil {
		s := *b.unresolved
		return &s
	}
	return nil
}

// FormatBirthDate renders d as YYYY-MM-DD independent of any locale.
func FormatBirthDate(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseBirthDate validates raw against YYYY-MM-DD and resolves it to a date.
// A syntactically valid value that is not a calendar date (providers send
// 0000 or 00 segments for unknown parts) yields ok == false and no error.
// Year 0000 is treated as unknown rather than as 1 BC.
func ParseBirthDate(raw string) (d civil.Date, ok bool, err error) {
	if !dobPattern.MatchString(raw) {
		return civil.Date{}, false, fmt.Errorf("%w: birthdate %q is not YYYY-MM-DD", ErrInvalidFormat, raw)
	}
	d, perr := civil.ParseDate(raw)
	if perr != nil || d.Year < minYear {
		return civil.Date{}, false, nil
	}
	return d, true, nil
}

func newBirthDate(d civil.Date) (birthDate, error) {
	if !d.IsValid() || d.Year < minYear || d.Year > maxYear {
		return birthDate{}, fmt.Errorf("%w: %v", ErrInvalidDate, d)
	}
	return birthDate{date: &d}, nil
}

func parseBirthDate(raw string) (birthDate, error) {
	d, ok, err := ParseBirthDate(raw)
	if err != nil {
		return birthDate{}, err
	}
	if !ok {
		logger.WithField(FieldBirthDate, raw).Warn("sreg: birthdate could not be resolved to a calendar date")
		s := raw
		return birthDate{unresolved: &s}, nil
	}
	return birthDate{date: &d}, nil
}

// BirthDate returns the resolved birthdate.
func (r *Response) BirthDate() (civil.Date, bool) {
	if r.birth.date == nil {
		return civil.Date{}, false
	}
	return *r.birth.date, true
}

// SetBirthDate stores d and derives the raw form from it.
func (r *Response) SetBirthDate(d civil.Date) error {
	b, err := newBirthDate(d)
	if err != nil {
		return err
	}
	r.birth = b
	return nil
}

// ClearBirthDate unsets both birthdate forms.
func (r *Response) ClearBirthDate() { r.birth = birthDate{} }

// BirthDateRaw returns the wire form of the birthdate, or nil when unset.
func (r *Response) BirthDateRaw() *string { return r.birth.raw() }

// SetBirthDateRaw assigns the wire form. nil clears both forms. A value that
// does not match YYYY-MM-DD fails with ErrInvalidFormat and leaves r unchanged.
func (r *Response) SetBirthDateRaw(raw *string) error {
	if raw == nil {
		r.birth = birthDate{}
		return nil
	}
	b, err := parseBirthDate(*raw)
	if err != nil {
		return err
	}
	r.birth = b
	return nil
}
