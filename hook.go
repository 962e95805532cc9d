// hook.go — process-wide handler factory for xgx-report core.
//
// The hook is the one piece of shared state in the package: a function from
// "the error being stored" to "the Handler to attach." Install-once,
// first-writer-wins; reads are lock-free. If never installed, every Report
// gets a DefaultHandler.
package xgxreport

import (
	"errors"
	"sync/atomic"
)

// HookFunc builds the Handler attached to a Report at construction time.
// It receives the erased error about to be stored.
type HookFunc func(err error) Handler

// ErrHookInstalled is returned by SetHook when a hook is already in place.
// The existing hook stays in effect; it is never overwritten.
var ErrHookInstalled = errors.New("xgxreport: construction hook already installed")

var installedHook atomic.Pointer[HookFunc]

// SetHook installs the process-wide handler factory. Only the first call
// succeeds; later calls return ErrHookInstalled. Install before building
// any Report — Reports constructed earlier keep their default handlers.
func SetHook(hook HookFunc) error {
	if hook == nil {
		return errors.New("xgxreport: nil hook")
	}
	if !installedHook.CompareAndSwap(nil, &hook) {
		return ErrHookInstalled
	}
	return nil
}

// captureHandler runs once per constructed Report.
func captureHandler(err error) Handler {
	if p := installedHook.Load(); p != nil {
		return (*p)(err)
	}
	return NewDefaultHandler(err)
}
