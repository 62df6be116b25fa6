package authgin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	authlang "github.com/PaulFidika/sregkit/lang"
	"github.com/PaulFidika/sregkit/sreg"
	kittest "github.com/PaulFidika/sregkit/testing"
)

func strp(s string) *string { return &s }

func newRouter(cfg *ProfileConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ProfileMiddleware(cfg))
	handler := func(c *gin.Context) {
		v, ok := CurrentProfile(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "profile": v})
	}
	r.GET("/openid/return", handler)
	r.POST("/openid/return", handler)
	return r
}

type body struct {
	OK      bool        `json:"ok"`
	Profile ProfileView `json:"profile"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return b
}

func TestProfileMiddleware_PositiveAssertion(t *testing.T) {
	resp := sreg.NewResponse(sreg.NamespaceV10)
	resp.Nickname = strp("alice")
	resp.Email = strp("alice@example.com")
	resp.FullName = strp("Alice Liddell")
	resp.Language = strp("es")
	resp.Country = strp("MX")
	resp.Gender = sreg.Female
	dob := "1990-00-00"
	if err := resp.SetBirthDateRaw(&dob); err != nil {
		t.Fatalf("SetBirthDateRaw: %v", err)
	}

	q := kittest.NewProvider().Assertion("https://alice.example.com/", resp)
	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openid/return?"+q.Encode(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	b := decode(t, w)
	if !b.OK || b.Profile.Source != "sreg" {
		t.Fatalf("expected sreg profile, got %#v", b)
	}
	if b.Profile.Nickname == nil || *b.Profile.Nickname != "alice" {
		t.Fatalf("unexpected nickname: %#v", b.Profile.Nickname)
	}
	if b.Profile.BirthDate == nil || *b.Profile.BirthDate != "1990-00-00" {
		t.Fatalf("unexpected dob: %#v", b.Profile.BirthDate)
	}
	if b.Profile.Gender != "F" || b.Profile.Language != "es" || b.Profile.Locale != "es-MX" {
		t.Fatalf("unexpected profile: %#v", b.Profile)
	}
	if !strings.Contains(b.Profile.Mailbox, "<alice@example.com>") {
		t.Fatalf("unexpected mailbox %q", b.Profile.Mailbox)
	}
	if b.Profile.TypeURI != sreg.NamespaceV10 {
		t.Fatalf("unexpected type uri %q", b.Profile.TypeURI)
	}
}

func TestProfileMiddleware_FormPost(t *testing.T) {
	resp := sreg.NewResponse(sreg.NamespaceV10)
	resp.Email = strp("bob@example.com")
	q := kittest.NewProvider().Assertion("https://bob.example.com/", resp)

	req := httptest.NewRequest(http.MethodPost, "/openid/return", strings.NewReader(q.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	newRouter(&ProfileConfig{ContextKey: "custom"}).ServeHTTP(w, req)
	b := decode(t, w)
	if !b.OK || b.Profile.Email == nil || *b.Profile.Email != "bob@example.com" {
		t.Fatalf("expected form profile, got %#v", b)
	}
	if b.Profile.Language != "en" {
		t.Fatalf("expected default language, got %q", b.Profile.Language)
	}
}

func TestProfileMiddleware_OpenID1(t *testing.T) {
	resp := sreg.NewResponse(sreg.NamespaceV10)
	resp.Nickname = strp("carol")
	op := kittest.NewProvider()
	op.OpenID1 = true

	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openid/return?"+op.Assertion("https://carol.example.com/", resp).Encode(), nil))
	b := decode(t, w)
	if !b.OK || b.Profile.Nickname == nil || *b.Profile.Nickname != "carol" {
		t.Fatalf("expected OpenID 1.x profile, got %#v", b)
	}
}

func TestProfileMiddleware_RejectsMalformed(t *testing.T) {
	op := kittest.NewProvider()
	for _, fields := range []map[string]string{
		{"gender": "X"},
		{"dob": "abcd-ef-gh"},
	} {
		q := op.AssertionWithFields("https://dave.example.com/", sreg.NamespaceV10, fields)
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openid/return?"+q.Encode(), nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", fields, w.Code)
		}
		if !strings.Contains(w.Body.String(), "invalid_sreg") {
			t.Fatalf("%v: unexpected body %s", fields, w.Body.String())
		}
	}
}

func TestProfileMiddleware_PassThrough(t *testing.T) {
	op := kittest.NewProvider()
	cases := map[string]url.Values{
		"no openid message": {"lang": {"es"}},
		"negative":          op.Cancel(),
		"other namespace":   op.AssertionWithFields("https://erin.example.com/", sreg.NamespaceV11, map[string]string{"nickname": "erin"}),
	}
	for name, q := range cases {
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openid/return?"+q.Encode(), nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, w.Code)
		}
		b := decode(t, w)
		if b.OK || b.Profile.Source != "none" {
			t.Fatalf("%s: expected no profile, got %#v", name, b)
		}
	}
}

func TestProfileFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	r := sreg.NewResponse(sreg.NamespaceV10)
	r.Nickname = strp("frank")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(SetProfile(req.Context(), r))

	got, ok := ProfileFromGin(c)
	if !ok || got != r {
		t.Fatalf("expected response from request context")
	}
	if _, ok := authlang.LocaleFromContext(c.Request.Context()); ok {
		t.Fatalf("expected no locale")
	}
}

func TestProfileMiddleware_DoesNotVerifySignature(t *testing.T) {
	resp := sreg.NewResponse(sreg.NamespaceV10)
	resp.Nickname = strp("grace")
	q := kittest.NewProvider().Assertion("https://grace.example.com/", resp)
	q.Del("openid.sig")
	q.Del("openid.signed")

	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openid/return?"+q.Encode(), nil))
	b := decode(t, w)
	if !b.OK || b.Profile.Nickname == nil || *b.Profile.Nickname != "grace" {
		t.Fatalf("expected unsigned claims to be passed through, got %#v", b)
	}
}
