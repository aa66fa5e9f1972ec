package logincounter

import (
	"math/rand"
	"sync"
)

// DefaultCapacity is the high-water mark for distinct identities tracked in
// memory before random thinning kicks in
const DefaultCapacity = 100_000

// Key identifies a failed-login bucket. Clients with no trusted device cookie
// collapse to the sentinel nonce, so all untrusted attempts against one
// username share a bucket.
type Key struct {
	Username string
	Nonce    string
}

// Counter tracks failed login attempts per (username, nonce) identity.
//
// It is a deliberately approximate, process-local cache: its only job is to
// short-circuit abusive attempts cheaply before the durable lockout store or
// the password hasher is touched. The durable store stays authoritative
// across restarts.
type Counter struct {
	mu              sync.Mutex
	attempts        map[Key]int
	maxFailedLogins int
	capacity        int
}

// Option configures a Counter
type Option func(*Counter)

// WithCapacity overrides the thinning high-water mark
func WithCapacity(capacity int) Option {
	return func(c *Counter) {
		c.capacity = capacity
	}
}

// NewCounter creates a counter that reports over-limit at maxFailedLogins
func NewCounter(maxFailedLogins int, opts ...Option) *Counter {
	c := &Counter{
		attempts:        make(map[Key]int),
		maxFailedLogins: maxFailedLogins,
		capacity:        DefaultCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordFailure increments the count for the identity. When the number of
// distinct identities reaches the capacity mark, each existing entry is
// first kept independently with probability 1/2. This is a bounded-memory
// safety valve against pathological key cardinality, not an LRU.
func (c *Counter) RecordFailure(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.attempts) >= c.capacity {
		thinned := make(map[Key]int, len(c.attempts)/2)
		for k, v := range c.attempts {
			if rand.Intn(2) == 0 {
				thinned[k] = v
			}
		}
		c.attempts = thinned
	}

	c.attempts[key]++
}

// IsOverLimit reports whether the identity has reached the failure limit.
// Absent keys read as zero.
func (c *Counter) IsOverLimit(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts[key] >= c.maxFailedLogins
}

// Reset clears all tracked attempts. Invoked on a fixed schedule so the fast
// path never rate-limits a legitimate user longer than one interval.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts = make(map[Key]int)
}

// Len returns the number of distinct identities currently tracked
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.attempts)
}
