package sreg

import "context"

// Cache holds responses between receiving an assertion and consuming it.
// Put rejects a nil response with ErrNilResponse.
type Cache interface {
	Put(ctx context.Context, key string, r *Response) error
	Get(ctx context.Context, key string) (*Response, bool, error)
	Del(ctx context.Context, key string) error
}
