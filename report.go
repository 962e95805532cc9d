// report.go — the public Report handle for xgx-report core.
//
// Scope (tiny core):
//   - Constructors: New, Msg, Errorf, FromBoxed, Wrap, WrapErr.
//   - Chain access, root cause, downcasting (by reference, mutably, and by
//     value), handler access, explicit release, and conversion back to a
//     plain error.
//   - Report is itself an error and cooperates with errors.Is/As via Unwrap.
//
// Failure semantics:
//   - Construction cannot fail; nil inputs yield a nil Report.
//   - Downcast is the only fallible operation and reports failure by
//     returning ok=false with the Report left untouched.
//   - Handler() on an emptied slot is a programmer error and panics; no
//     documented construction path produces that state.
package xgxreport

import (
	"fmt"
	"io"
	"reflect"
)

// Report is a narrow, type-erased handle owning a single error value of any
// concrete type, plus the Handler captured when it was built. Exactly one
// live owner exists per allocation; wrapping transfers ownership to the new
// outer Report.
type Report struct {
	inner *errorImpl
}

var (
	_ error         = (*Report)(nil)
	_ fmt.Formatter = (*Report)(nil)
)

// New builds a Report from any error value. The concrete type of err is the
// downcast target. New(nil) returns nil.
func New[E error](err E) *Report {
	if any(err) == nil {
		return nil
	}
	return construct(err, plainVTable[E](), captureHandler(err))
}

// Msg builds a Report from a printable message that need not be an error.
// The downcast target is the message type itself, not the internal adapter.
func Msg[M any](message M) *Report {
	adapter := messageError[M]{message: message}
	return construct(adapter, messageVTable[M](), captureHandler(adapter))
}

// Errorf builds an ad-hoc message Report from a format string.
func Errorf(format string, args ...any) *Report {
	return Msg(fmt.Sprintf(format, args...))
}

// FromBoxed builds a Report from an already-interface-typed error without
// recovering its concrete type: the downcast target is the error interface
// itself. Prefer New when the concrete type is statically known.
func FromBoxed(err error) *Report {
	if err == nil {
		return nil
	}
	return construct(err, plainVTable[error](), captureHandler(err))
}

// Wrap attaches a message to a concrete error, producing a Report that
// downcasts to either the message type or the error type.
// Wrap(nil, msg) degrades to Msg(msg).
func Wrap[E error, D any](err E, msg D) *Report {
	if any(err) == nil {
		return Msg(msg)
	}
	ce := contextError[D, E]{msg: msg, err: err}
	return construct(ce, contextVTable[D, E](), captureHandler(ce))
}

// WrapErr takes ownership of r and produces a Report one layer deeper. The
// handler moves from r's header into the new one, so formatting context
// always reflects the latest wrap layer. r must not be used afterwards
// except through the returned Report.
func WrapErr[D any](r *Report, msg D) *Report {
	if r == nil || r.inner == nil {
		return Msg(msg)
	}
	handler := r.inner.header.handler
	r.inner.header.handler = nil
	ce := contextError[D, *Report]{msg: msg, err: r}
	return construct(ce, contextChainVTable[D](), handler)
}

// Wrap is WrapErr sugar for the common string-message case.
func (r *Report) Wrap(msg string) *Report { return WrapErr(r, msg) }

// Wrapf is Wrap with formatting.
func (r *Report) Wrapf(format string, args ...any) *Report {
	return WrapErr(r, fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------
// Access
// -----------------------------------------------------------------------------

// Err returns the erased error value stored in the Report, or nil for a nil
// or consumed Report. The result is a snapshot; use MutableErr to mutate.
func (r *Report) Err() error {
	if r == nil || r.inner == nil {
		return nil
	}
	return r.inner.header.vtable.objectRef(r.inner)
}

// MutableErr returns the erased error with pointer identity preserved where
// the stored type allows it, for callers that mutate the concrete value
// through interface assertions.
func (r *Report) MutableErr() error {
	if r == nil || r.inner == nil {
		return nil
	}
	return r.inner.header.vtable.objectMut(r.inner)
}

// Error implements the error interface with the outermost message.
func (r *Report) Error() string {
	if e := r.Err(); e != nil {
		return e.Error()
	}
	return "<nil>"
}

// Unwrap exposes the erased error to errors.Is/As traversal.
func (r *Report) Unwrap() error { return r.Err() }

// Chain returns a lazy iterator over the cause chain, outermost first.
func (r *Report) Chain() *Chain { return NewChain(r.Err()) }

// RootCause walks the chain to its final element — the deepest cause.
// O(depth); returns nil only for a nil or consumed Report.
func (r *Report) RootCause() error {
	var root error
	for c := r.Chain(); ; {
		e, ok := c.Next()
		if !ok {
			return root
		}
		root = e
	}
}

// -----------------------------------------------------------------------------
// Downcasting
// -----------------------------------------------------------------------------

// Is reports whether T is held by this Report: the leaf error type or any
// wrap layer's message type.
func Is[T any](r *Report) bool {
	_, ok := DowncastRef[T](r)
	return ok
}

// DowncastRef returns a pointer to the stored value of type T, looking
// through every wrap layer. No side effects.
func DowncastRef[T any](r *Report) (*T, bool) {
	if r == nil || r.inner == nil {
		return nil, false
	}
	addr, ok := r.inner.header.vtable.objectDowncast(r.inner, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return nil, false
	}
	return addr.(*T), true
}

// DowncastMut is DowncastRef through the mutable dispatch entry; mutations
// through the returned pointer are observed by subsequent operations.
func DowncastMut[T any](r *Report) (*T, bool) {
	if r == nil || r.inner == nil {
		return nil, false
	}
	addr, ok := r.inner.header.vtable.objectDowncastMut(r.inner, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return nil, false
	}
	return addr.(*T), true
}

// Downcast moves the stored value of type T out of the Report. On success
// the Report is consumed: every remaining layer is released exactly once and
// further use of r fails cleanly. On failure r is untouched.
func Downcast[T any](r *Report) (T, bool) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, false
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	addr, ok := r.inner.header.vtable.objectDowncast(r.inner, target)
	if !ok {
		return zero, false
	}
	value := *addr.(*T)
	inner := r.inner
	r.inner = nil
	inner.header.vtable.objectDropRest(inner, target)
	return value, true
}

// -----------------------------------------------------------------------------
// Handler, release, interop
// -----------------------------------------------------------------------------

// Handler returns the Handler attached at construction time. It panics on a
// nil/consumed Report or when the slot was emptied by wrapping — both are
// programmer errors, unreachable through documented use.
func (r *Report) Handler() Handler {
	if r == nil || r.inner == nil {
		panic("xgxreport: Handler on nil or consumed Report")
	}
	h := r.inner.header.handler
	if h == nil {
		panic("xgxreport: handler slot is empty (Report was wrapped)")
	}
	return h
}

// Release drops the Report: every layer's resources are released exactly
// once through the dispatch table. Idempotent; safe on nil.
func (r *Report) Release() {
	if r == nil || r.inner == nil {
		return
	}
	inner := r.inner
	r.inner = nil
	inner.header.vtable.objectDrop(inner)
}

// IntoError consumes the Report and returns its allocation typed as a plain
// error, keeping handler-aware formatting. The Report must not be used
// afterwards.
func (r *Report) IntoError() error {
	if r == nil || r.inner == nil {
		return nil
	}
	inner := r.inner
	r.inner = nil
	return inner.header.vtable.objectBoxed(inner)
}

// Format renders through the attached Handler:
//
//	%v, %s  → concise display
//	%+v     → verbose rendering with the cause chain
//	%q      → quoted concise form
func (r *Report) Format(s fmt.State, verb rune) {
	if r == nil || r.inner == nil {
		_, _ = io.WriteString(s, "<nil>")
		return
	}
	h := r.inner.header.handler
	if h == nil {
		h = fallbackHandler
	}
	formatWith(h, r.Err(), s, verb)
}
