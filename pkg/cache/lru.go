package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key      K
	val      V
	deadline time.Time
}

// LRU is a bounded map that drops its least recently read entry when full.
// Entries may also carry a deadline set by WithTTL.
type LRU[K comparable, V any] struct {
	mu    sync.Mutex
	max   int
	ttl   time.Duration
	clock func() time.Time
	index map[K]*list.Element
	order *list.List // front is most recent
}

// Option tunes an LRU at construction.
type Option func(*settings)

type settings struct {
	ttl   time.Duration
	clock func() time.Time
}

// WithTTL expires an entry ttl after its last Put. Non-positive values keep
// entries until they are evicted.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) { s.ttl = max(ttl, 0) }
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New returns an LRU holding at most size entries. It panics if size < 1.
func New[K comparable, V any](size int, opts ...Option) *LRU[K, V] {
	if size < 1 {
		panic("cache: size must be at least 1")
	}
	s := settings{clock: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &LRU[K, V]{
		max:   size,
		ttl:   s.ttl,
		clock: s.clock,
		index: make(map[K]*list.Element, size),
		order: list.New(),
	}
}

// Get returns the live value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if !e.deadline.IsZero() && !c.clock().Before(e.deadline) {
		c.drop(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.val, true
}

// Put stores val under key and restarts its TTL.
func (c *LRU[K, V]) Put(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deadline time.Time
	if c.ttl > 0 {
		deadline = c.clock().Add(c.ttl)
	}

	if el, ok := c.index[key]; ok {
		e := el.Value.(*entry[K, V])
		e.val, e.deadline = val, deadline
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&entry[K, V]{key: key, val: val, deadline: deadline})
	if c.order.Len() > c.max {
		c.drop(c.order.Back())
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len counts entries, expired ones included until they are read.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[K, V]) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*entry[K, V]).key)
}
