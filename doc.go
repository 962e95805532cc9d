// doc.go — package documentation for xgx-report
//
// Package xgxreport provides a single narrow error handle, Report, that can
// own an error value of any concrete type while exposing a uniform surface
// for display, cause-chain traversal, and downcasting back to the original
// concrete type. It is designed to be:
//   - Ergonomic at call sites (small surface, clear semantics)
//   - Interoperable with the stdlib (errors.Is/As/Unwrap, fmt.Formatter)
//   - Policy-free (no logging/HTTP/JSON in core; rendering is pluggable)
//
// # Model
//
// A Report owns exactly one erased payload plus a Handler captured at
// construction time. Internally the payload sits behind a dispatch table of
// seven operations (drop, ref, mutable ref, box-convert, downcast, mutable
// downcast, partial drop), instantiated per concrete type via generics. The
// public API never exposes the table; every operation on a Report routes
// through it, so call sites carry no type parameter beyond the one they ask
// about.
//
// # Construction and wrapping
//
//	r := xgxreport.New(err)              // from any error value
//	r = xgxreport.Msg("no config found") // from a printable message
//	r = r.Wrap("loading settings")       // attach a higher-level message
//
// Each Wrap/WrapErr produces a new Report one layer deeper; the previous
// Report is owned by the new one and its Handler moves forward so formatting
// always reflects the most recent wrap layer.
//
// # Downcasting
//
// Downcasting looks through every wrap layer: it can match the message type
// attached at any layer, or the leaf error's own type, whichever the caller
// asks for. A message attached by wrapping never shadows the leaf type. This
// is deliberate; downstream code may match either interchangeably.
//
//	if inner, ok := xgxreport.DowncastRef[*fs.PathError](r); ok { ... }
//
// By-value Downcast consumes the Report on success: the wanted value is
// moved out and every other layer is released exactly once. On failure the
// Report is left untouched and remains fully usable.
//
// # Chain traversal
//
//	for c := r.Chain(); ; {
//		e, ok := c.Next() // outermost → root cause
//		...
//	}
//
// Chain is lazy, one step per advance, and can be driven from the back after
// an internal one-pass materialization. RootCause returns the final element.
//
// # Handlers
//
// Display and verbose rendering are delegated to a Handler captured when the
// Report is first built. Install a process-wide factory once with SetHook
// (first writer wins; later calls fail with ErrHookInstalled). When no hook
// is installed a built-in DefaultHandler renders the message and a
// "Caused by:" section.
//
// # Resource discipline
//
// Go is garbage collected, so dropping is about resources, not memory:
// payloads and wrap messages implementing io.Closer are closed exactly once
// when a Report is Released or consumed by a successful by-value Downcast.
// A value moved out by Downcast is never closed by the container.
package xgxreport
