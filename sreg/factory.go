package sreg

import openidkit "github.com/PaulFidika/sregkit/openid"

// ResponseFactory constructs a Response when typeURI is the canonical
// namespace and the enclosing message is a positive assertion. Fields are
// populated separately by the registry.
func ResponseFactory(typeURI string, _ map[string]string, variant openidkit.Variant) openidkit.Creation {
	if typeURI == NamespaceV10 && variant == openidkit.VariantIndirectSignedResponse {
		return openidkit.Matched(NewResponse(typeURI))
	}
	return openidkit.NotApplicable()
}

// RequestFactory constructs a Request for any of the extension's namespaces
// inside an authentication request.
func RequestFactory(typeURI string, _ map[string]string, variant openidkit.Variant) openidkit.Creation {
	if IsNamespace(typeURI) && variant == openidkit.VariantCheckIDRequest {
		return openidkit.Matched(NewRequest(typeURI))
	}
	return openidkit.NotApplicable()
}

// Register adds both factories to reg and declares the OpenID 1.x alias.
func Register(reg *openidkit.Registry) *openidkit.Registry {
	return reg.Register(ResponseFactory).Register(RequestFactory).Alias(DefaultAlias, NamespaceV10)
}
