// handler.go — pluggable rendering for xgx-report core.
//
// The core never interprets its own rendering: Report.Format routes the
// erased error to the Handler captured at construction time. DefaultHandler
// is the built-in implementation used when no hook is installed; it renders
// the concise message for %v and a "Caused by:" section for %+v, with an
// optional captured stack.
package xgxreport

import (
	"fmt"
	"io"
)

// Handler customizes how a Report renders. Display receives the erased
// error for the concise form (%v, %s); Debug receives it for the verbose
// form (%+v). Implementations walk the chain themselves, typically via
// NewChain. Write errors are the sink's problem; handlers ignore them.
type Handler interface {
	Display(err error, w io.Writer)
	Debug(err error, w io.Writer)
}

// formatWith maps fmt verbs onto the handler surface.
func formatWith(h Handler, err error, s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			h.Debug(err, s)
			return
		}
		h.Display(err, s)
	case 's':
		h.Display(err, s)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", err.Error())
	default:
		h.Display(err, s)
	}
}

// DefaultHandler is the built-in Handler used when no construction hook has
// been installed.
type DefaultHandler struct {
	stack Stack
}

var _ Handler = (*DefaultHandler)(nil)

// fallbackHandler renders Reports whose handler slot is empty, which only
// happens when formatting a wrapped-away or boxed Report directly.
var fallbackHandler Handler = &DefaultHandler{}

// NewDefaultHandler is the default construction-hook factory.
func NewDefaultHandler(err error) Handler {
	return &DefaultHandler{}
}

// DefaultHandlerWithStack is an alternative factory that records the
// construction call site. Install it via SetHook to get a stack section in
// verbose output. The skip count hides the construction plumbing between
// the user call and this factory.
func DefaultHandlerWithStack(err error) Handler {
	return &DefaultHandler{stack: captureStackDefault(3)}
}

// StackTrace returns a copy of the captured stack, if any.
func (h *DefaultHandler) StackTrace() Stack {
	if len(h.stack) == 0 {
		return nil
	}
	out := make(Stack, len(h.stack))
	copy(out, h.stack)
	return out
}

func (h *DefaultHandler) Display(err error, w io.Writer) {
	_, _ = io.WriteString(w, err.Error())
}

func (h *DefaultHandler) Debug(err error, w io.Writer) {
	_, _ = io.WriteString(w, err.Error())

	if causes := NewChain(err).Collect(); len(causes) > 1 {
		_, _ = io.WriteString(w, "\n\nCaused by:")
		if len(causes) == 2 {
			_, _ = fmt.Fprintf(w, "\n    %s", causes[1].Error())
		} else {
			for i, cause := range causes[1:] {
				_, _ = fmt.Fprintf(w, "\n    %d: %s", i, cause.Error())
			}
		}
	}

	if len(h.stack) > 0 {
		_, _ = io.WriteString(w, "\n\nStack:")
		for _, fr := range h.stack {
			_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
		}
	}
}
