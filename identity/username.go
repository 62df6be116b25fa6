package identity

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/PaulFidika/sregkit/sreg"
)

// UsernameTaken reports whether a username is already in use.
type UsernameTaken func(ctx context.Context, username string) (bool, error)

// SuggestUsername derives a username base from asserted claims: nickname,
// then email local part, then full name.
func SuggestUsername(r *sreg.Response) string {
	if r == nil {
		return "user"
	}
	if r.Nickname != nil && strings.TrimSpace(*r.Nickname) != "" {
		return cleanUsername(*r.Nickname)
	}
	if r.Email != nil {
		local := *r.Email
		if i := strings.IndexByte(local, '@'); i > 0 {
			local = local[:i]
		}
		if strings.TrimSpace(local) != "" {
			return cleanUsername(local)
		}
	}
	if r.FullName != nil && strings.TrimSpace(*r.FullName) != "" {
		return cleanUsername(*r.FullName)
	}
	return "user"
}

// AvailableUsername tries base, then minimal numeric suffixes, then a short random fallback.
func AvailableUsername(ctx context.Context, base string, taken UsernameTaken) (string, error) {
	base = cleanUsername(base)
	try := func(candidate string) (bool, error) {
		used, err := taken(ctx, candidate)
		return err == nil && !used, err
	}
	if ok, err := try(base); ok || err != nil {
		return base, err
	}
	for i := 1; i <= 999; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if ok, err := try(candidate); ok || err != nil {
			return candidate, err
		}
	}
	for tries := 0; tries < 100; tries++ {
		candidate := fmt.Sprintf("%s%04d", base, rand.Intn(10000))
		if ok, err := try(candidate); ok || err != nil {
			return candidate, err
		}
	}
	return base + "_user", nil
}

// cleanUsername normalizes to lowercase, keeps [a-z0-9_], ensures a letter prefix, and caps length to 32.
func cleanUsername(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "user"
	}
	if out[0] < 'a' || out[0] > 'z' {
		out = "u" + out
	}
	if len(out) > 32 {
		out = out[:32]
	}
	return out
}
