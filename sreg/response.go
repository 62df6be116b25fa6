// Package sreg implements the OpenID Simple Registration extension: a fixed
// bundle of optional profile claims an identity provider attaches to a
// positive assertion.
//
// A Response is a plain value object. It is not safe for concurrent mutation;
// keep one instance per in-flight message.
package sreg

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const (
	// NamespaceV10 is the canonical type URI of the extension.
	NamespaceV10 = "http://openid.net/sreg/1.0"
	// NamespaceV11 is the type URI published for version 1.1.
	NamespaceV11 = "http://openid.net/extensions/sreg/1.1"
	// NamespaceV11Alt is a 1.1 type URI seen in the wild.
	NamespaceV11Alt = "http://openid.net/sreg/1.1"

	// DefaultAlias is the alias the extension is conventionally written under.
	DefaultAlias = "sreg"
)

// IsNamespace reports whether uri is one of the extension's type URIs.
func IsNamespace(uri string) bool {
	switch uri {
	case NamespaceV10, NamespaceV11, NamespaceV11Alt:
		return true
	}
	return false
}

// Response carries the profile claims returned by an identity provider.
type Response struct {
	typeURI string

	Nickname   *string
	Email      *string
	FullName   *string
	PostalCode *string
	Country    *string
	Language   *string
	TimeZone   *string
	Gender     Gender

	birth  birthDate
	locale localeMemo
	id     uuid.UUID
}

// NewResponse returns an empty response written under typeURI. Pass the
// namespace the counterpart used so it is echoed back unchanged.
func NewResponse(typeURI string) *Response {
	return &Response{typeURI: typeURI, id: uuid.New()}
}

// TypeURI returns the namespace the response was constructed with.
func (r *Response) TypeURI() string { return r.typeURI }

// MailAddress composes an address from Email, using FullName as display name.
func (r *Response) MailAddress() (*mail.Address, error) {
	if r.Email == nil || *r.Email == "" {
		return nil, ErrNoEmail
	}
	addr, err := mail.ParseAddress(*r.Email)
	if err != nil {
		return nil, fmt.Errorf("sreg: email %q: %w", *r.Email, err)
	}
	if r.FullName != nil {
		addr.Name = *r.FullName
	}
	return addr, nil
}

// Equal compares every claim. TypeURI and the locale memo are ignored.
// A nil response equals only another nil response.
func (r *Response) Equal(o *Response) bool {
	if r == nil || o == nil {
		return r == o
	}
	return eqStr(r.BirthDateRaw(), o.BirthDateRaw()) &&
		eqStr(r.Country, o.Country) &&
		eqStr(r.Language, o.Language) &&
		eqStr(r.Email, o.Email) &&
		eqStr(r.FullName, o.FullName) &&
		r.Gender == o.Gender &&
		eqStr(r.Nickname, o.Nickname) &&
		eqStr(r.PostalCode, o.PostalCode) &&
		eqStr(r.TimeZone, o.TimeZone)
}

// Hash is the hash of Nickname when set. Otherwise it is derived from the
// instance identity, so equal responses without a nickname may hash apart.
func (r *Response) Hash() uint64 {
	if r == nil {
		return 0
	}
	if r.Nickname != nil {
		return xxhash.Sum64String(*r.Nickname)
	}
	if r.id == uuid.Nil {
		r.id = uuid.New()
	}
	return xxhash.Sum64(r.id[:])
}

// Clone returns an independent copy with a fresh identity. Clone of nil is nil.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	c := *r
	c.id = uuid.New()
	for _, p := range []**string{&c.Nickname, &c.Email, &c.FullName, &c.PostalCode, &c.Country, &c.Language, &c.TimeZone} {
		if *p != nil {
			*p = strptr(**p)
		}
	}
	return &c
}

type responseJSON struct {
	TypeURI string            `json:"type_uri"`
	Fields  map[string]string `json:"fields"`
}

func (r *Response) MarshalJSON() ([]byte, error) {
	fields, err := r.EncodeFields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(responseJSON{TypeURI: r.typeURI, Fields: fields})
}

func (r *Response) UnmarshalJSON(b []byte) error {
	var w responseJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	next := NewResponse(w.TypeURI)
	if err := next.decodeFields(w.Fields, true); err != nil {
		return err
	}
	*r = *next
	return nil
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
