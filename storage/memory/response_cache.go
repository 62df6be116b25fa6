package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/PaulFidika/sregkit/sreg"
)

// ResponseCache is an in-memory implementation of sreg.Cache with TTL.
type ResponseCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	data   map[string]item
	closed chan struct{}
	once   sync.Once
}

type item struct {
	v   *sreg.Response
	exp time.Time
}

// NewResponseCache creates a new in-memory response cache with the given TTL.
// If ttl <= 0, a default of 10 minutes is used.
// Starts a background goroutine to clean up expired entries every minute.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &ResponseCache{ttl: ttl, now: time.Now, data: make(map[string]item), closed: make(chan struct{})}
	go c.cleanupLoop()
	return c
}

// Put stores a copy of r; later changes to r are not visible through the cache.
func (s *ResponseCache) Put(ctx context.Context, key string, r *sreg.Response) error {
	_ = ctx
	if r == nil {
		return sreg.ErrNilResponse
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = item{v: r.Clone(), exp: s.now().Add(s.ttl)}
	return nil
}

func (s *ResponseCache) Get(ctx context.Context, key string) (*sreg.Response, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(it.exp) {
		delete(s.data, key)
		return nil, false, nil
	}
	return it.v.Clone(), true, nil
}

func (s *ResponseCache) Del(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *ResponseCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.closed:
			return
		}
	}
}

func (s *ResponseCache) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, v := range s.data {
		if now.After(v.exp) {
			delete(s.data, k)
		}
	}
}

// Close stops the background cleanup goroutine. It is safe to call more than once.
func (s *ResponseCache) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

var _ sreg.Cache = (*ResponseCache)(nil)
