// chain.go — lazy cause-chain cursor for xgx-report core.
//
// Traversal semantics:
//   - Forward: one Unwrap step per Next call, outermost → root cause; the
//     final element is yielded exactly once, then the cursor is exhausted.
//   - Backward: NextBack materializes the remainder in a single pass, then
//     serves from the back. Forward and backward consumption share the
//     buffer once it exists.
//   - Chains are linear (Unwrap() error only) and assumed acyclic; a depth
//     cap bounds traversal against runaway graphs.
//
// A Chain is not restartable; build a fresh one from the original error.
// Re-collection is cheap relative to formatting cost.
package xgxreport

import "errors"

// maxChainDepth is a generous cap against accidental cycles.
const maxChainDepth = 1 << 12

// Chain is a cursor over the Unwrap links of an error, walkable from either
// end. The zero value is exhausted.
type Chain struct {
	head     error
	buf      []error
	buffered bool
}

// NewChain starts a cursor at err. Handlers use this to walk arbitrary
// errors, not only Reports.
func NewChain(err error) *Chain {
	return &Chain{head: err}
}

// Next yields the next element from the front, advancing one Unwrap step.
func (c *Chain) Next() (error, bool) {
	if c == nil {
		return nil, false
	}
	if c.buffered {
		if len(c.buf) == 0 {
			return nil, false
		}
		e := c.buf[0]
		c.buf = c.buf[1:]
		return e, true
	}
	if c.head == nil {
		return nil, false
	}
	cur := c.head
	c.head = errors.Unwrap(cur)
	return cur, true
}

// NextBack yields the next element from the back, materializing the
// remaining chain on first use.
func (c *Chain) NextBack() (error, bool) {
	if c == nil {
		return nil, false
	}
	c.materialize()
	if len(c.buf) == 0 {
		return nil, false
	}
	e := c.buf[len(c.buf)-1]
	c.buf = c.buf[:len(c.buf)-1]
	return e, true
}

// Len reports the number of elements remaining without consuming any.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	if c.buffered {
		return len(c.buf)
	}
	n := 0
	for cur := c.head; cur != nil && n < maxChainDepth; cur = errors.Unwrap(cur) {
		n++
	}
	return n
}

// Collect drains the remaining elements front-to-back.
func (c *Chain) Collect() []error {
	out := make([]error, 0, 4)
	for {
		e, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func (c *Chain) materialize() {
	if c.buffered {
		return
	}
	c.buffered = true
	for cur := c.head; cur != nil && len(c.buf) < maxChainDepth; cur = errors.Unwrap(cur) {
		c.buf = append(c.buf, cur)
	}
	c.head = nil
}
