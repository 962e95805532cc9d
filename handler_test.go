// handler_test.go — verb routing and DefaultHandler rendering.
package xgxreport

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_ConciseShowsOutermostMessage(t *testing.T) {
	t.Parallel()
	r := Msg("root cause").Wrap("layer one").Wrap("layer two")
	assert.Equal(t, "layer two", fmt.Sprintf("%v", r))
	assert.Equal(t, "layer two", fmt.Sprintf("%s", r))
}

func TestFormat_VerboseSingleCauseUnnumbered(t *testing.T) {
	t.Parallel()
	r := Msg("root cause").Wrap("layer one")
	want := "layer one\n\nCaused by:\n    root cause"
	assert.Equal(t, want, fmt.Sprintf("%+v", r))
}

func TestFormat_VerboseMultipleCausesNumbered(t *testing.T) {
	t.Parallel()
	r := Msg("root cause").Wrap("layer one").Wrap("layer two")
	want := "layer two\n\nCaused by:\n    0: layer one\n    1: root cause"
	assert.Equal(t, want, fmt.Sprintf("%+v", r))
}

func TestFormat_VerboseNoCauseSectionForLeaf(t *testing.T) {
	t.Parallel()
	r := New(rootErr{7})
	assert.Equal(t, "root failure 7", fmt.Sprintf("%+v", r))
}

func TestFormat_Quoted(t *testing.T) {
	t.Parallel()
	r := Msg(`path "a b"`)
	assert.Equal(t, `"path \"a b\""`, fmt.Sprintf("%q", r))
}

func TestFormat_NilReport(t *testing.T) {
	t.Parallel()
	var r *Report
	assert.Equal(t, "<nil>", fmt.Sprintf("%v", r))
	assert.Equal(t, "<nil>", fmt.Sprintf("%+v", r))
}

func TestDefaultHandler_DebugWalksStdlibChains(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("outer: %w", errors.New("inner"))
	var sb strings.Builder
	NewDefaultHandler(err).Debug(err, &sb)
	assert.Equal(t, "outer: inner\n\nCaused by:\n    inner", sb.String())
}

func TestDefaultHandlerWithStack_CapturesCallSite(t *testing.T) {
	t.Parallel()
	h := DefaultHandlerWithStack(errors.New("boom"))

	dh, ok := h.(*DefaultHandler)
	require.True(t, ok)
	frames := dh.StackTrace()
	require.NotEmpty(t, frames)
	for _, fr := range frames {
		assert.NotZero(t, fr.PC)
		assert.NotEmpty(t, fr.Function)
	}

	var sb strings.Builder
	h.Debug(errors.New("boom"), &sb)
	assert.Contains(t, sb.String(), "\n\nStack:")
}

func TestDefaultHandler_StackTraceNilWhenAbsent(t *testing.T) {
	t.Parallel()
	h := NewDefaultHandler(errors.New("boom")).(*DefaultHandler)
	assert.Nil(t, h.StackTrace())
}
