// stack.go — call-site capture for handler implementations.
//
// The core never captures stacks on its own; capture belongs to handler
// factories (see DefaultHandlerWithStack). This file only provides the
// mechanics: runtime.Callers + runtime.CallersFrames for accurate frame
// resolution (inlined frames are expanded correctly), bounded depth, and
// explicit skip accounting so user-visible stacks begin at the call site
// that built the Report.
package xgxreport

import "runtime"

// Frame is a single call site in a captured stack.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string // fully-qualified (pkg.Func or recv.method)
}

// Stack is a slice of Frames from most recent call outward.
type Stack []Frame

// defaultMaxDepth bounds capture cost on exceptional paths while keeping
// enough context to be useful.
const defaultMaxDepth = 64

// captureStackDefault captures with the default depth bound. skip counts
// frames beyond the internal helpers; 0 starts at the immediate caller.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' frames past
// the capture plumbing itself.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	// +3 skips runtime.Callers, captureStack, and captureStackDefault so the
	// first recorded frame is at (or near) the caller-visible site; any
	// caller-supplied skip applies on top.
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}
