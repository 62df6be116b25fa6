package authgin

import (
	authlang "github.com/PaulFidika/sregkit/lang"
	"github.com/gin-gonic/gin"
)

// ProfileView is a read-only snapshot of the asserted registration claims.
//
// Fields with * are omitted when the provider did not send them.
type ProfileView struct {
	Nickname   *string `json:"nickname,omitempty"`
	Email      *string `json:"email,omitempty"`
	FullName   *string `json:"fullname,omitempty"`
	BirthDate  *string `json:"dob,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	PostalCode *string `json:"postcode,omitempty"`
	Country    *string `json:"country,omitempty"`
	TimeZone   *string `json:"timezone,omitempty"`
	Mailbox    string  `json:"mailbox,omitempty"` // "Full Name <email>" when email is set
	Language   string  `json:"language"`
	Locale     string  `json:"locale,omitempty"`

	// Meta
	TypeURI string `json:"type_uri,omitempty"`
	Source  string `json:"source"` // "sreg" | "none"
}

// CurrentProfile returns the asserted profile for handlers.
// Language falls back to "en" when the provider sent none.
func CurrentProfile(c *gin.Context) (ProfileView, bool) {
	reqLang := "en"
	if v, ok := authlang.LanguageFromContext(c.Request.Context()); ok {
		reqLang = v
	}

	r, ok := ProfileFromGin(c)
	if !ok {
		return ProfileView{Language: reqLang, Source: "none"}, false
	}
	v := ProfileView{
		Nickname:   r.Nickname,
		Email:      r.Email,
		FullName:   r.FullName,
		BirthDate:  r.BirthDateRaw(),
		Gender:     r.Gender.Code(),
		PostalCode: r.PostalCode,
		Country:    r.Country,
		TimeZone:   r.TimeZone,
		Language:   reqLang,
		TypeURI:    r.TypeURI(),
		Source:     "sreg",
	}
	if addr, err := r.MailAddress(); err == nil {
		v.Mailbox = addr.String()
	}
	if tag, ok := r.Locale(); ok {
		v.Locale = tag.String()
	}
	return v, true
}
