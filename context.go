// context.go — message attachment for xgx-report core.
//
// Two wrapper shapes live here:
//   - messageError[M]: adapts a printable message into an error so it can
//     sit behind the erased payload. Downcasting targets M itself, never
//     the adapter.
//   - contextError[D, E]: a message of type D attached to an underlying
//     error of type E. E is either a concrete error (Wrap) or a nested
//     *Report (WrapErr), which is the backbone of the wrap chain.
//
// The context-chain operations at the bottom implement the recursive
// downcast/drop walk over nested Report layers. Ordering in
// contextChainDropRest is load-bearing: the nested impl is read out before
// the outer shell is released, and only then does the recursion continue,
// so no layer is released twice and none is leaked.
package xgxreport

import (
	"fmt"
	"reflect"
)

// messageError adapts a displayable value into an error.
type messageError[M any] struct {
	message M
}

func (m messageError[M]) Error() string { return fmt.Sprint(m.message) }

func (m *messageError[M]) release() { releaseSlot(&m.message) }

// messageVTable: like plainVTable, but downcast targets the message type M.
func messageVTable[M any]() *errorVTable {
	return &errorVTable{
		objectDrop:        objectDrop[messageError[M]],
		objectRef:         objectRef[messageError[M]],
		objectMut:         objectMut[messageError[M]],
		objectBoxed:       objectBoxed[messageError[M]],
		objectDowncast:    messageDowncast[M],
		objectDowncastMut: messageDowncastMut[M],
		objectDropRest:    objectDropFront[messageError[M]],
	}
}

func messageDowncast[M any](e *errorImpl, target reflect.Type) (any, bool) {
	if reflect.TypeOf((*M)(nil)).Elem() != target {
		return nil, false
	}
	return &e.payload.(*messageError[M]).message, true
}

func messageDowncastMut[M any](e *errorImpl, target reflect.Type) (any, bool) {
	return messageDowncast[M](e, target)
}

// contextError pairs a message with an underlying error. Field order is
// stable across instantiations; the drop-rest operations rely on releasing
// one field while the other has been moved out.
type contextError[D, E any] struct {
	msg D
	err E
}

func (c contextError[D, E]) Error() string { return fmt.Sprint(c.msg) }

// Unwrap exposes the cause to stdlib traversal. A nested Report contributes
// its erased error directly, so Reports never appear as chain elements.
func (c contextError[D, E]) Unwrap() error {
	switch e := any(c.err).(type) {
	case *Report:
		return e.Err()
	case error:
		return e
	}
	return nil
}

func (c *contextError[D, E]) release() {
	releaseSlot(&c.msg)
	releaseSlot(&c.err)
}

// -----------------------------------------------------------------------------
// Plain context pair: message D over a concrete error E (Wrap)
// -----------------------------------------------------------------------------

func contextVTable[D any, E error]() *errorVTable {
	return &errorVTable{
		objectDrop:        objectDrop[contextError[D, E]],
		objectRef:         objectRef[contextError[D, E]],
		objectMut:         objectMut[contextError[D, E]],
		objectBoxed:       objectBoxed[contextError[D, E]],
		objectDowncast:    contextDowncast[D, E],
		objectDowncastMut: contextDowncastMut[D, E],
		objectDropRest:    contextDropRest[D, E],
	}
}

// contextDowncast matches either the message type D or the underlying error
// type E and returns the address of that field.
func contextDowncast[D any, E error](e *errorImpl, target reflect.Type) (any, bool) {
	c := e.payload.(*contextError[D, E])
	if reflect.TypeOf((*D)(nil)).Elem() == target {
		return &c.msg, true
	}
	if reflect.TypeOf((*E)(nil)).Elem() == target {
		return &c.err, true
	}
	return nil, false
}

func contextDowncastMut[D any, E error](e *errorImpl, target reflect.Type) (any, bool) {
	return contextDowncast[D, E](e, target)
}

// contextDropRest releases whichever field was NOT moved out by the
// preceding by-value downcast.
func contextDropRest[D any, E error](e *errorImpl, target reflect.Type) {
	c := e.payload.(*contextError[D, E])
	switch target {
	case reflect.TypeOf((*D)(nil)).Elem():
		releaseSlot(&c.err)
	case reflect.TypeOf((*E)(nil)).Elem():
		releaseSlot(&c.msg)
	}
	e.payload = nil
}

// -----------------------------------------------------------------------------
// Context chain: message D over a nested *Report (WrapErr)
// -----------------------------------------------------------------------------

func contextChainVTable[D any]() *errorVTable {
	return &errorVTable{
		objectDrop:        objectDrop[contextError[D, *Report]],
		objectRef:         objectRef[contextError[D, *Report]],
		objectMut:         objectMut[contextError[D, *Report]],
		objectBoxed:       objectBoxed[contextError[D, *Report]],
		objectDowncast:    contextChainDowncast[D],
		objectDowncastMut: contextChainDowncastMut[D],
		objectDropRest:    contextChainDropRest[D],
	}
}

// contextChainDowncast matches the message type D at this layer, otherwise
// delegates to the nested Report's own table with the same target. The
// recursion bottoms out at a plain or message table, which either matches
// the leaf or reports not-found.
func contextChainDowncast[D any](e *errorImpl, target reflect.Type) (any, bool) {
	c := e.payload.(*contextError[D, *Report])
	if reflect.TypeOf((*D)(nil)).Elem() == target {
		return &c.msg, true
	}
	inner := c.err.inner
	if inner == nil {
		return nil, false
	}
	return inner.header.vtable.objectDowncast(inner, target)
}

func contextChainDowncastMut[D any](e *errorImpl, target reflect.Type) (any, bool) {
	c := e.payload.(*contextError[D, *Report])
	if reflect.TypeOf((*D)(nil)).Elem() == target {
		return &c.msg, true
	}
	inner := c.err.inner
	if inner == nil {
		return nil, false
	}
	return inner.header.vtable.objectDowncastMut(inner, target)
}

// contextChainDropRest runs after a by-value downcast matched either this
// layer's message or something deeper.
func contextChainDropRest[D any](e *errorImpl, target reflect.Type) {
	c := e.payload.(*contextError[D, *Report])
	if reflect.TypeOf((*D)(nil)).Elem() == target {
		// The message was moved out by the caller; everything beneath goes
		// wholesale, nested Report included.
		c.err.Release()
		e.payload = nil
		return
	}
	// The match is deeper. Take the nested impl first, release the outer
	// shell, then recurse through the nested table with the same target.
	inner := c.err.inner
	c.err.inner = nil
	releaseSlot(&c.msg)
	e.payload = nil
	if inner != nil {
		inner.header.vtable.objectDropRest(inner, target)
	}
}
