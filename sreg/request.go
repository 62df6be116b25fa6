package sreg

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DemandLevel is how strongly a relying party asks for a field.
type DemandLevel int

const (
	DemandNone DemandLevel = iota
	DemandOptional
	DemandRequired
)

const (
	argRequired  = "required"
	argOptional  = "optional"
	argPolicyURL = "policy_url"
)

// Request lists the claims a relying party asks the provider for.
type Request struct {
	typeURI   string
	demands   map[string]DemandLevel
	PolicyURL *string
}

// NewRequest returns an empty request written under typeURI.
func NewRequest(typeURI string) *Request {
	return &Request{typeURI: typeURI, demands: make(map[string]DemandLevel)}
}

func (q *Request) TypeURI() string { return q.typeURI }

// Demand sets the level for a wire field name.
func (q *Request) Demand(field string, level DemandLevel) error {
	if _, ok := codecs[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if level == DemandNone {
		delete(q.demands, field)
		return nil
	}
	if q.demands == nil {
		q.demands = make(map[string]DemandLevel)
	}
	q.demands[field] = level
	return nil
}

// DemandOf returns the level requested for field.
func (q *Request) DemandOf(field string) DemandLevel { return q.demands[field] }

// Required returns the required field names in definition order.
func (q *Request) Required() []string { return q.fieldsAt(DemandRequired) }

// Optional returns the optional field names in definition order.
func (q *Request) Optional() []string { return q.fieldsAt(DemandOptional) }

func (q *Request) fieldsAt(level DemandLevel) []string {
	var out []string
	for _, name := range Fields {
		if q.demands[name] == level {
			out = append(out, name)
		}
	}
	return out
}

func (q *Request) EncodeFields() (map[string]string, error) {
	out := make(map[string]string, 3)
	if req := q.Required(); len(req) > 0 {
		out[argRequired] = strings.Join(req, ",")
	}
	if opt := q.Optional(); len(opt) > 0 {
		out[argOptional] = strings.Join(opt, ",")
	}
	if q.PolicyURL != nil && *q.PolicyURL != "" {
		out[argPolicyURL] = *q.PolicyURL
	}
	return out, nil
}

// DecodeFields reads the required, optional and policy_url arguments.
// A field listed as both required and optional is required.
func (q *Request) DecodeFields(fields map[string]string) error {
	demands := make(map[string]DemandLevel)
	for _, arg := range []struct {
		key   string
		level DemandLevel
	}{{argOptional, DemandOptional}, {argRequired, DemandRequired}} {
		for _, name := range strings.Split(fields[arg.key], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := codecs[name]; !ok {
				logger.WithFields(logrus.Fields{"field": name, "list": arg.key}).Debug("sreg: ignoring unknown requested field")
				continue
			}
			demands[name] = arg.level
		}
	}
	q.demands = demands
	if v := fields[argPolicyURL]; v != "" {
		q.PolicyURL = strptr(v)
	} else {
		q.PolicyURL = nil
	}
	return nil
}

// CreateResponse returns an empty response under the request's namespace.
func (q *Request) CreateResponse() *Response { return NewResponse(q.typeURI) }

// Trim returns a copy of r holding only the fields q asks for.
func (q *Request) Trim(r *Response) *Response {
	out := r.Clone()
	for name, c := range codecs {
		if q.demands[name] == DemandNone {
			c.clear(out)
		}
	}
	out.locale = localeMemo{}
	return out
}
