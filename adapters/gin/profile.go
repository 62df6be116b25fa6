package authgin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authlang "github.com/PaulFidika/sregkit/lang"
	openidkit "github.com/PaulFidika/sregkit/openid"
	"github.com/PaulFidika/sregkit/sreg"
)

const defaultContextKey = "sregkit.profile"

// ProfileConfig configures ProfileMiddleware.
type ProfileConfig struct {
	// Registry decodes extensions. Defaults to one with the sreg factories registered.
	Registry *openidkit.Registry
	// ContextKey is the gin key the response is stored under.
	ContextKey string
	Logger     logrus.FieldLogger
}

func (c *ProfileConfig) defaulted() ProfileConfig {
	var out ProfileConfig
	if c != nil {
		out = *c
	}
	if out.Registry == nil {
		out.Registry = sreg.Register(openidkit.NewRegistry())
	}
	if strings.TrimSpace(out.ContextKey) == "" {
		out.ContextKey = defaultContextKey
	}
	if out.Logger == nil {
		out.Logger = logrus.StandardLogger()
	}
	return out
}

type ctxKey struct{}

// SetProfile attaches r to ctx.
func SetProfile(ctx context.Context, r *sreg.Response) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// ProfileFromContext reads the response attached by ProfileMiddleware.
func ProfileFromContext(ctx context.Context) (*sreg.Response, bool) {
	r, ok := ctx.Value(ctxKey{}).(*sreg.Response)
	return r, ok && r != nil
}

// ProfileFromGin reads the response from the gin context, falling back to the request context.
func ProfileFromGin(c *gin.Context) (*sreg.Response, bool) {
	if v, ok := c.Get(defaultContextKey); ok {
		if r, ok := v.(*sreg.Response); ok && r != nil {
			return r, true
		}
	}
	return ProfileFromContext(c.Request.Context())
}

// ProfileMiddleware decodes registration claims from an OpenID positive
// assertion on the return_to request (query string, or form body on POST).
// Requests without an OpenID message pass through untouched. Malformed
// extension data aborts with 400.
//
// The assertion signature and openid.signed are not checked. The claims are
// unauthenticated unless the assertion was verified before this runs.
func ProfileMiddleware(cfg *ProfileConfig) gin.HandlerFunc {
	c := cfg.defaulted()
	return func(g *gin.Context) {
		values := g.Request.URL.Query()
		if g.Request.Method == http.MethodPost {
			if err := g.Request.ParseForm(); err == nil {
				values = g.Request.Form
			}
		}
		msg, err := openidkit.ParseMessage(values)
		if err != nil {
			g.Next()
			return
		}
		exts, err := c.Registry.Extensions(msg)
		if err != nil {
			c.Logger.WithError(err).WithField("variant", msg.Variant.String()).Warn("sreg: rejecting malformed extension data")
			g.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_sreg"})
			return
		}
		if r, ok := openidkit.Find[*sreg.Response](exts); ok {
			g.Set(c.ContextKey, r)
			if c.ContextKey != defaultContextKey {
				g.Set(defaultContextKey, r)
			}
			ctx := SetProfile(g.Request.Context(), r)
			if tag, ok := r.Locale(); ok {
				ctx = authlang.WithLocale(ctx, tag)
			}
			g.Request = g.Request.WithContext(ctx)
		}
		g.Next()
	}
}
