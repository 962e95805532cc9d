// vtable.go — erased storage and per-type dispatch for xgx-report core.
//
// Scope (tiny core):
//   - errorImpl: header (dispatch table + handler) plus the erased payload.
//   - errorVTable: seven operations, each instantiated for one concrete
//     payload type via generics; the instantiated function values are the
//     dispatch table, so no call site outside this file needs the payload's
//     static type.
//   - Release helpers implementing the "drop" half of the contract.
//
// Safety model:
//   - The payload is stored as `any` holding *E. Every vtable function
//     asserts that shape; the single invariant of the subsystem is that a
//     header's table was built for the payload type actually stored next to
//     it. Construction is the only place tables are paired with payloads,
//     which keeps the invariant local and checkable.
//   - "Dropping" in a garbage-collected language means releasing resources:
//     payloads and wrap messages implementing io.Closer are closed exactly
//     once; a value moved out by a by-value downcast is never closed here.
package xgxreport

import (
	"fmt"
	"io"
	"reflect"
)

// errorVTable is the fixed seven-operation contract over an erased payload.
// One instantiation exists per concrete payload type; all seven entries must
// agree on that type. Never mutated after construction.
type errorVTable struct {
	objectDrop        func(*errorImpl)
	objectRef         func(*errorImpl) error
	objectMut         func(*errorImpl) error
	objectBoxed       func(*errorImpl) error
	objectDowncast    func(*errorImpl, reflect.Type) (any, bool)
	objectDowncastMut func(*errorImpl, reflect.Type) (any, bool)
	objectDropRest    func(*errorImpl, reflect.Type)
}

// errorHeader precedes the payload: the table selected at construction time
// and the optional Handler. The handler slot is emptied when a Report is
// wrapped; the handler travels forward to the new outer Report.
type errorHeader struct {
	vtable  *errorVTable
	handler Handler
}

// errorImpl is the single allocation a Report owns: header plus payload.
// payload holds *E for the concrete stored type E; touch it only through
// the header's vtable.
type errorImpl struct {
	header  errorHeader
	payload any
}

// construct moves err into a fresh errorImpl and hands ownership to a new
// Report. The caller must supply a vtable built for E.
func construct[E any](err E, vt *errorVTable, h Handler) *Report {
	return &Report{inner: &errorImpl{
		header:  errorHeader{vtable: vt, handler: h},
		payload: &err,
	}}
}

// plainVTable builds the dispatch table for a payload stored as-is, with no
// message wrapper around it.
func plainVTable[E error]() *errorVTable {
	return &errorVTable{
		objectDrop:        objectDrop[E],
		objectRef:         objectRef[E],
		objectMut:         objectMut[E],
		objectBoxed:       objectBoxed[E],
		objectDowncast:    objectDowncast[E],
		objectDowncastMut: objectDowncastMut[E],
		objectDropRest:    objectDropFront[E],
	}
}

// -----------------------------------------------------------------------------
// The seven operations, plain-payload instantiations
// -----------------------------------------------------------------------------

// objectDrop releases the whole payload. Used when a Report is Released
// without having been downcast.
func objectDrop[E any](e *errorImpl) {
	if e == nil || e.payload == nil {
		return
	}
	releaseSlot(e.payload.(*E))
	e.payload = nil
}

// objectDropFront releases everything except the payload value itself, which
// a by-value downcast has already moved out. For a plain payload there is
// nothing left to release.
func objectDropFront[E any](e *errorImpl, _ reflect.Type) {
	e.payload = nil
}

// objectRef re-types the payload up to the error interface. The returned
// value is a per-call snapshot; mutation goes through objectMut or the
// mutable downcast path.
func objectRef[E any](e *errorImpl) error {
	return any(*e.payload.(*E)).(error)
}

// objectMut is objectRef with pointer identity preserved where the payload
// type allows it, so callers can mutate the concrete value through interface
// assertions.
func objectMut[E any](e *errorImpl) error {
	p := e.payload.(*E)
	if err, ok := any(p).(error); ok {
		return err
	}
	return any(*p).(error)
}

// objectBoxed consumes the allocation and re-types it as a plain error. The
// errorImpl itself is the returned error; its fmt.Formatter keeps using the
// attached handler.
func objectBoxed[E any](e *errorImpl) error {
	return e
}

// objectDowncast returns the payload's address when the runtime type tag
// matches E. No side effects, no allocation.
func objectDowncast[E any](e *errorImpl, target reflect.Type) (any, bool) {
	if reflect.TypeOf((*E)(nil)).Elem() != target {
		return nil, false
	}
	return e.payload.(*E), true
}

func objectDowncastMut[E any](e *errorImpl, target reflect.Type) (any, bool) {
	// Pointer access is identical for shared and mutable forms in Go; the
	// slot stays separate so the mutable entry point dispatches on its own.
	return objectDowncast[E](e, target)
}

// -----------------------------------------------------------------------------
// Release plumbing
// -----------------------------------------------------------------------------

// releaser is implemented by the internal wrapper types so release recurses
// through message/error pairs and nested Reports.
type releaser interface{ release() }

// releaseValue releases a single value if it participates in the release
// protocol. Reports are released through their own vtable; everything else
// is closed at most one level deep — errors owning deeper resources are
// expected to cascade in their own Close.
func releaseValue(v any) bool {
	switch x := v.(type) {
	case *Report:
		x.Release()
		return true
	case releaser:
		x.release()
		return true
	case io.Closer:
		_ = x.Close()
		return true
	}
	return false
}

// releaseSlot releases the value stored at p, preferring the pointer form so
// pointer-receiver Close implementations are honored, then falling back to
// the value form for pointer- and interface-typed slots.
func releaseSlot[T any](p *T) {
	if p == nil {
		return
	}
	if releaseValue(any(p)) {
		return
	}
	releaseValue(any(*p))
}

// -----------------------------------------------------------------------------
// errorImpl as a plain error (the objectBoxed result)
// -----------------------------------------------------------------------------

func (e *errorImpl) Error() string {
	if e.payload == nil {
		return "<released>"
	}
	return e.header.vtable.objectRef(e).Error()
}

func (e *errorImpl) Unwrap() error {
	if e.payload == nil {
		return nil
	}
	if u, ok := e.header.vtable.objectRef(e).(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return nil
}

// Format keeps handler-aware rendering after a Report has been converted to
// a plain error via IntoError.
func (e *errorImpl) Format(s fmt.State, verb rune) {
	if e.payload == nil {
		_, _ = io.WriteString(s, "<released>")
		return
	}
	h := e.header.handler
	if h == nil {
		h = fallbackHandler
	}
	formatWith(h, e.header.vtable.objectRef(e), s, verb)
}
