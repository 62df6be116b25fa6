package openidkit

import (
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Namespace2 is the protocol namespace carried in openid.ns by OpenID 2.0 messages.
const Namespace2 = "http://specs.openid.net/auth/2.0"

const argPrefix = "openid."

// ErrNotOpenID is returned when a set of values carries no openid.mode.
var ErrNotOpenID = errors.New("openid: missing openid.mode")

// Variant identifies the shape of an indirect OpenID message.
type Variant int

const (
	VariantUnknown Variant = iota
	// VariantCheckIDRequest is an authentication request (checkid_setup/checkid_immediate).
	VariantCheckIDRequest
	// VariantIndirectSignedResponse is a positive assertion (id_res) delivered by redirect.
	VariantIndirectSignedResponse
	// VariantNegativeAssertion covers cancel and setup_needed.
	VariantNegativeAssertion
	// VariantIndirectError is an error response delivered by redirect.
	VariantIndirectError
)

func (v Variant) String() string {
	switch v {
	case VariantCheckIDRequest:
		return "checkid_request"
	case VariantIndirectSignedResponse:
		return "indirect_signed_response"
	case VariantNegativeAssertion:
		return "negative_assertion"
	case VariantIndirectError:
		return "indirect_error"
	default:
		return "unknown"
	}
}

// Message is a flat set of openid.* arguments with the prefix stripped.
type Message struct {
	Variant Variant
	args    map[string]string
}

// ExtensionData is one aliased block of extension arguments found in a message.
type ExtensionData struct {
	Alias   string
	TypeURI string
	Fields  map[string]string
}

// NewMessage returns an OpenID 2.0 message of the given variant.
func NewMessage(v Variant) *Message {
	m := &Message{Variant: v, args: map[string]string{"ns": Namespace2}}
	if mode := modeFor(v); mode != "" {
		m.args["mode"] = mode
	}
	return m
}

// ParseMessage extracts openid.* arguments from query or form values.
func ParseMessage(values url.Values) (*Message, error) {
	args := make(map[string]string)
	for k := range values {
		if strings.HasPrefix(k, argPrefix) {
			args[strings.TrimPrefix(k, argPrefix)] = values.Get(k)
		}
	}
	mode := strings.TrimSpace(args["mode"])
	if mode == "" {
		return nil, ErrNotOpenID
	}
	m := &Message{args: args}
	m.Variant = variantFor(mode, args)
	return m, nil
}

// IsOpenID2 reports whether the message declares the OpenID 2.0 namespace.
func (m *Message) IsOpenID2() bool { return m.args["ns"] == Namespace2 }

// Get returns an argument by its name without the openid. prefix.
func (m *Message) Get(key string) (string, bool) {
	v, ok := m.args[key]
	return v, ok
}

// Set assigns an argument by its name without the openid. prefix.
func (m *Message) Set(key, value string) { m.args[key] = value }

// Values renders the message back into prefixed url.Values.
func (m *Message) Values() url.Values {
	out := make(url.Values, len(m.args))
	for k, v := range m.args {
		out.Set(argPrefix+k, v)
	}
	return out
}

// Extensions lists the aliased extension blocks in the message, sorted by alias.
// implicit maps aliases to type URIs for OpenID 1.x messages, which carry no
// openid.ns.<alias> declarations.
func (m *Message) Extensions(implicit map[string]string) []ExtensionData {
	aliases := make(map[string]string)
	for k, v := range m.args {
		if alias, ok := strings.CutPrefix(k, "ns."); ok && alias != "" && v != "" {
			aliases[alias] = v
		}
	}
	implied := make(map[string]bool)
	if !m.IsOpenID2() {
		for alias, uri := range implicit {
			if _, declared := aliases[alias]; !declared {
				aliases[alias] = uri
				implied[alias] = true
			}
		}
	}

	out := make([]ExtensionData, 0, len(aliases))
	for alias, uri := range aliases {
		fields := make(map[string]string)
		prefix := alias + "."
		for k, v := range m.args {
			if name, ok := strings.CutPrefix(k, prefix); ok && name != "" {
				fields[name] = v
			}
		}
		// Implicit aliases only count when a field is present.
		if len(fields) == 0 && implied[alias] {
			continue
		}
		out = append(out, ExtensionData{Alias: alias, TypeURI: uri, Fields: fields})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}

// SetExtension writes ext under alias, replacing any arguments previously held there.
func (m *Message) SetExtension(alias string, ext Extension) error {
	if alias == "" || strings.Contains(alias, ".") {
		return errors.New("openid: invalid extension alias")
	}
	fields, err := ext.EncodeFields()
	if err != nil {
		return err
	}
	prefix := alias + "."
	for k := range m.args {
		if strings.HasPrefix(k, prefix) {
			delete(m.args, k)
		}
	}
	if m.IsOpenID2() {
		m.args["ns."+alias] = ext.TypeURI()
	}
	for k, v := range fields {
		m.args[prefix+k] = v
	}
	return nil
}

func variantFor(mode string, args map[string]string) Variant {
	switch mode {
	case "checkid_setup", "checkid_immediate":
		return VariantCheckIDRequest
	case "id_res":
		// OpenID 1.x signals setup_needed through id_res plus user_setup_url.
		if _, ok := args["user_setup_url"]; ok && args["ns"] != Namespace2 {
			return VariantNegativeAssertion
		}
		return VariantIndirectSignedResponse
	case "cancel", "setup_needed":
		return VariantNegativeAssertion
	case "error":
		return VariantIndirectError
	default:
		return VariantUnknown
	}
}

func modeFor(v Variant) string {
	switch v {
	case VariantCheckIDRequest:
		return "checkid_setup"
	case VariantIndirectSignedResponse:
		return "id_res"
	case VariantNegativeAssertion:
		return "cancel"
	case VariantIndirectError:
		return "error"
	default:
		return ""
	}
}
