package sreg

import (
	"strings"

	"golang.org/x/text/language"
)

// ComposeLocale builds a locale tag from a language and an optional country.
// It never caches; see (*Response).Locale for the memoized accessor.
func ComposeLocale(lang, country string) (language.Tag, bool) {
	if lang == "" {
		return language.Und, false
	}
	s := lang
	if country != "" {
		s += "-" + country
	}
	tag, err := language.Parse(s)
	if err != nil {
		logger.WithField("locale", s).WithError(err).Warn("sreg: locale could not be parsed")
		return language.Und, false
	}
	return tag, true
}

// localeMemo holds the locale computed on first read. It is not invalidated
// when Language or Country change afterwards.
type localeMemo struct {
	tag language.Tag
	ok  bool
}

func (m *localeMemo) get(lang, country *string) (language.Tag, bool) {
	if m.ok {
		return m.tag, true
	}
	tag, ok := ComposeLocale(deref(lang), deref(country))
	if !ok {
		return language.Und, false
	}
	m.tag, m.ok = tag, true
	return tag, true
}

func (m *localeMemo) set(tag language.Tag) {
	if tag == language.Und {
		*m = localeMemo{}
		return
	}
	m.tag, m.ok = tag, true
}

// Locale returns the locale composed from Language and Country.
//
// The first successful result is memoized. Assigning Language or Country
// directly afterwards does not refresh it; use SetLocale, or ComposeLocale
// for an uncached value.
func (r *Response) Locale() (language.Tag, bool) {
	return r.locale.get(r.Language, r.Country)
}

// SetLocale splits tag into Language and Country and memoizes it as given.
// language.Und clears all three.
func (r *Response) SetLocale(tag language.Tag) {
	r.locale.set(tag)
	if tag == language.Und {
		r.Language, r.Country = nil, nil
		return
	}
	base, _ := tag.Base()
	r.Language = strptr(base.String())
	full := tag.String()
	if i := strings.IndexByte(full, '-'); i > 0 {
		r.Country = strptr(full[i+1:])
	} else {
		r.Country = nil
	}
}
