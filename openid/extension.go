package openidkit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package logger.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}

// Extension is a typed block of extension arguments carried inside a message.
type Extension interface {
	// TypeURI returns the namespace the extension is written under.
	TypeURI() string
	// EncodeFields renders the extension as flat wire fields (alias prefix excluded).
	EncodeFields() (map[string]string, error)
	// DecodeFields populates the extension from flat wire fields.
	DecodeFields(fields map[string]string) error
}

// Creation is the outcome of a Factory: either a matched extension or not applicable.
type Creation struct {
	ext Extension
}

// Matched wraps a freshly constructed extension.
func Matched(ext Extension) Creation { return Creation{ext: ext} }

// NotApplicable reports that a factory does not handle the given block.
func NotApplicable() Creation { return Creation{} }

// Extension returns the matched extension, if any.
func (c Creation) Extension() (Extension, bool) { return c.ext, c.ext != nil }

// Factory decides whether it handles an extension block and, if so, constructs
// an empty extension for it. Field population happens afterwards.
type Factory func(typeURI string, fields map[string]string, variant Variant) Creation

// Registry tries factories in registration order for each extension block.
// Configure it before sharing it between goroutines.
type Registry struct {
	factories []Factory
	implicit  map[string]string
}

// NewRegistry returns a registry with the given factories.
func NewRegistry(factories ...Factory) *Registry {
	return &Registry{factories: factories, implicit: map[string]string{}}
}

// Register appends a factory.
func (r *Registry) Register(f Factory) *Registry {
	r.factories = append(r.factories, f)
	return r
}

// Alias declares the type URI an alias implies in OpenID 1.x messages.
func (r *Registry) Alias(alias, typeURI string) *Registry {
	r.implicit[alias] = typeURI
	return r
}

// Extensions builds and populates every extension in m that some factory handles.
// Blocks no factory claims are skipped.
func (r *Registry) Extensions(m *Message) ([]Extension, error) {
	var out []Extension
	for _, block := range m.Extensions(r.implicit) {
		ext, ok := r.create(block, m.Variant)
		if !ok {
			logger.WithFields(logrus.Fields{"alias": block.Alias, "type_uri": block.TypeURI}).Debug("openid: no factory for extension")
			continue
		}
		if err := ext.DecodeFields(block.Fields); err != nil {
			return nil, fmt.Errorf("openid: extension %s: %w", block.TypeURI, err)
		}
		out = append(out, ext)
	}
	return out, nil
}

func (r *Registry) create(block ExtensionData, v Variant) (Extension, bool) {
	for _, f := range r.factories {
		if ext, ok := f(block.TypeURI, block.Fields, v).Extension(); ok {
			return ext, true
		}
	}
	return nil, false
}

// Find returns the first extension of type T.
func Find[T Extension](exts []Extension) (T, bool) {
	for _, e := range exts {
		if t, ok := e.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
