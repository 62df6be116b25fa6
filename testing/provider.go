// Package testing provides utilities for testing applications that consume
// registration claims. It builds OpenID indirect messages the way a provider
// would redirect them, without a real provider.
//
// Example usage:
//
//	op := testing.NewProvider()
//	r := sreg.NewResponse(sreg.NamespaceV10)
//	r.Email = &email
//	req := httptest.NewRequest(http.MethodGet, "/return?"+op.Assertion("https://alice.example.com/", r).Encode(), nil)
package testing

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	openidkit "github.com/PaulFidika/sregkit/openid"
	"github.com/PaulFidika/sregkit/sreg"
)

// Provider builds indirect messages for tests. Signatures are placeholders.
type Provider struct {
	Endpoint string
	Alias    string
	// OpenID1 drops the openid.ns declarations, as OpenID 1.x providers do.
	OpenID1 bool
}

// NewProvider returns a provider writing extensions under the "sreg" alias.
func NewProvider() *Provider {
	return &Provider{Endpoint: "https://op.example.com/openid", Alias: sreg.DefaultAlias}
}

// Assertion returns a positive assertion for claimedID carrying r.
func (p *Provider) Assertion(claimedID string, r *sreg.Response) url.Values {
	m := p.positive(claimedID)
	if err := m.SetExtension(p.Alias, r); err != nil {
		panic("failed to encode extension: " + err.Error())
	}
	return p.render(m)
}

// AssertionWithFields returns a positive assertion with raw extension fields,
// including values a real response would refuse to encode.
func (p *Provider) AssertionWithFields(claimedID, typeURI string, fields map[string]string) url.Values {
	m := p.positive(claimedID)
	if err := m.SetExtension(p.Alias, rawExtension{typeURI: typeURI, fields: fields}); err != nil {
		panic("failed to encode extension: " + err.Error())
	}
	return p.render(m)
}

// Cancel returns a negative assertion.
func (p *Provider) Cancel() url.Values {
	return p.render(openidkit.NewMessage(openidkit.VariantNegativeAssertion))
}

// Request returns a checkid_setup request asking for the fields in q.
func (p *Provider) Request(returnTo string, q *sreg.Request) url.Values {
	m := openidkit.NewMessage(openidkit.VariantCheckIDRequest)
	m.Set("return_to", returnTo)
	m.Set("claimed_id", "http://specs.openid.net/auth/2.0/identifier_select")
	m.Set("identity", "http://specs.openid.net/auth/2.0/identifier_select")
	if err := m.SetExtension(p.Alias, q); err != nil {
		panic("failed to encode extension: " + err.Error())
	}
	return p.render(m)
}

func (p *Provider) positive(claimedID string) *openidkit.Message {
	m := openidkit.NewMessage(openidkit.VariantIndirectSignedResponse)
	m.Set("op_endpoint", p.Endpoint)
	m.Set("claimed_id", claimedID)
	m.Set("identity", claimedID)
	m.Set("response_nonce", time.Now().UTC().Format("2006-01-02T15:04:05Z")+uuid.NewString()[:8])
	m.Set("assoc_handle", "test-handle")
	m.Set("signed", "op_endpoint,claimed_id,identity,response_nonce,assoc_handle")
	m.Set("sig", "dGVzdA==")
	return m
}

func (p *Provider) render(m *openidkit.Message) url.Values {
	v := m.Values()
	if p.OpenID1 {
		for k := range v {
			if k == "openid.ns" || strings.HasPrefix(k, "openid.ns.") {
				delete(v, k)
			}
		}
	}
	return v
}

type rawExtension struct {
	typeURI string
	fields  map[string]string
}

func (e rawExtension) TypeURI() string                          { return e.typeURI }
func (e rawExtension) EncodeFields() (map[string]string, error) { return e.fields, nil }
func (e rawExtension) DecodeFields(map[string]string) error     { return nil }
