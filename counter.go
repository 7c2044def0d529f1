package cups

import (
	"math"
	"sync/atomic"
)

// OperationIDMode selects how OperationID treats the request-id counter.
type OperationIDMode int

const (
	// OperationCurrent returns the last issued id without advancing.
	OperationCurrent OperationIDMode = iota
	// OperationNew advances the counter and returns the fresh id.
	OperationNew
)

// requestCounter hands out request ids. Zero is never issued and the counter
// does not wrap.
type requestCounter struct {
	n atomic.Uint32
}

func (c *requestCounter) next() (uint32, error) {
	for {
		cur := c.n.Load()
		if cur == math.MaxUint32 {
			return 0, ErrRequestIDExhausted
		}
		if c.n.CompareAndSwap(cur, cur+1) {
			return cur + 1, nil
		}
	}
}

func (c *requestCounter) current() uint32 {
	return c.n.Load()
}

func (c *requestCounter) set(v uint32) {
	c.n.Store(v)
}
