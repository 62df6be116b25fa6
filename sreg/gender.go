package sreg

// Gender is the three-state gender claim. The zero value means unset.
type Gender int8

const (
	GenderUnspecified Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unspecified"
	}
}

// Valid reports whether g is one of the three declared states.
func (g Gender) Valid() bool { return g >= GenderUnspecified && g <= Female }

// Code returns the wire token for g, or "" when the field is to be omitted.
func (g Gender) Code() string {
	switch g {
	case Male:
		return "M"
	case Female:
		return "F"
	default:
		return ""
	}
}

// ParseGender decodes a wire token. Anything other than "M" or "F" is a *DecodeError.
func ParseGender(code string) (Gender, error) {
	switch code {
	case "M":
		return Male, nil
	case "F":
		return Female, nil
	default:
		return GenderUnspecified, &DecodeError{Field: FieldGender, Value: code}
	}
}
