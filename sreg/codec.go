package sreg

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Wire field names, relative to the extension alias.
const (
	FieldNickname   = "nickname"
	FieldEmail      = "email"
	FieldFullName   = "fullname"
	FieldBirthDate  = "dob"
	FieldGender     = "gender"
	FieldPostalCode = "postcode"
	FieldCountry    = "country"
	FieldLanguage   = "language"
	FieldTimeZone   = "timezone"
)

// Fields lists the wire field names in the order the extension defines them.
var Fields = []string{
	FieldNickname,
	FieldEmail,
	FieldFullName,
	FieldBirthDate,
	FieldGender,
	FieldPostalCode,
	FieldCountry,
	FieldLanguage,
	FieldTimeZone,
}

// fieldCodec maps one field between a Response and its wire string.
// encode reports ok == false when the field is to be omitted. holdsEmpty marks
// fields where "" is a storable value rather than a malformed one.
type fieldCodec struct {
	encode     func(r *Response) (v string, ok bool, err error)
	decode     func(r *Response, v string) error
	clear      func(r *Response)
	holdsEmpty bool
}

var codecs = map[string]fieldCodec{
	FieldNickname:   stringCodec(func(r *Response) **string { return &r.Nickname }),
	FieldEmail:      stringCodec(func(r *Response) **string { return &r.Email }),
	FieldFullName:   stringCodec(func(r *Response) **string { return &r.FullName }),
	FieldPostalCode: stringCodec(func(r *Response) **string { return &r.PostalCode }),
	FieldCountry:    stringCodec(func(r *Response) **string { return &r.Country }),
	FieldLanguage:   stringCodec(func(r *Response) **string { return &r.Language }),
	FieldTimeZone:   stringCodec(func(r *Response) **string { return &r.TimeZone }),
	FieldBirthDate: {
		encode: func(r *Response) (string, bool, error) {
			raw := r.BirthDateRaw()
			if raw == nil {
				return "", false, nil
			}
			return *raw, true, nil
		},
		decode: func(r *Response, v string) error { return r.SetBirthDateRaw(&v) },
		clear:  (*Response).ClearBirthDate,
	},
	FieldGender: {
		encode: func(r *Response) (string, bool, error) {
			if !r.Gender.Valid() {
				return "", false, fmt.Errorf("sreg: invalid gender %d", r.Gender)
			}
			code := r.Gender.Code()
			return code, code != "", nil
		},
		decode: func(r *Response, v string) error {
			g, err := ParseGender(v)
			if err != nil {
				return err
			}
			r.Gender = g
			return nil
		},
		clear: func(r *Response) { r.Gender = GenderUnspecified },
	},
}

func stringCodec(field func(r *Response) **string) fieldCodec {
	return fieldCodec{
		encode: func(r *Response) (string, bool, error) {
			p := *field(r)
			if p == nil {
				return "", false, nil
			}
			return *p, true, nil
		},
		decode: func(r *Response, v string) error {
			*field(r) = strptr(v)
			return nil
		},
		clear:      func(r *Response) { *field(r) = nil },
		holdsEmpty: true,
	}
}

// EncodeFields renders every set claim as a wire field. Unset claims are omitted.
func (r *Response) EncodeFields() (map[string]string, error) {
	out := make(map[string]string, len(codecs))
	for _, name := range Fields {
		v, ok, err := codecs[name].encode(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out[name] = v
		}
	}
	return out, nil
}

// DecodeFields applies wire fields to r. Empty values count as absent and
// unknown names are ignored. If any field fails, r is left unchanged.
func (r *Response) DecodeFields(fields map[string]string) error {
	return r.decodeFields(fields, false)
}

// decodeFields is DecodeFields with keepEmpty deciding whether "" sets a
// string claim. Stored snapshots keep it so a set-but-empty claim survives.
func (r *Response) decodeFields(fields map[string]string, keepEmpty bool) error {
	next := *r
	for _, name := range Fields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		c := codecs[name]
		if v == "" && !(keepEmpty && c.holdsEmpty) {
			continue
		}
		if err := c.decode(&next, v); err != nil {
			return err
		}
	}
	for name := range fields {
		if _, known := codecs[name]; !known {
			logger.WithFields(logrus.Fields{"field": name, "type_uri": r.typeURI}).Debug("sreg: ignoring unknown field")
		}
	}
	*r = next
	return nil
}
