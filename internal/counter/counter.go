// Package counter holds the inbound request counter shared by the request
// middleware, the loggers and the snapshot adapter.
package counter

import "sync/atomic"

// RequestCounter counts inbound HTTP requests. The zero value is ready to use.
type RequestCounter struct {
	n atomic.Int64
}

// Inc increments the counter and returns the new value.
func (c *RequestCounter) Inc() int64 {
	return c.n.Add(1)
}

// Value returns the current count.
func (c *RequestCounter) Value() int64 {
	return c.n.Load()
}

// Set overwrites the count, used when restoring persisted state.
func (c *RequestCounter) Set(v int64) {
	c.n.Store(v)
}
