package lang

import (
	"context"

	"golang.org/x/text/language"
)

type ctxKey struct{}

// WithLocale attaches the locale asserted for the user to ctx.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// LocaleFromContext reads the asserted locale from ctx.
func LocaleFromContext(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(ctxKey{}).(language.Tag)
	return tag, ok && tag != language.Und
}

// LanguageFromContext returns the primary language subtag of the asserted locale.
func LanguageFromContext(ctx context.Context) (string, bool) {
	tag, ok := LocaleFromContext(ctx)
	if !ok {
		return "", false
	}
	base, _ := tag.Base()
	return base.String(), true
}
