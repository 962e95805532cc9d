// stack_test.go — frame capture mechanics.
package xgxreport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureStack_FirstFrameIsCaller(t *testing.T) {
	t.Parallel()
	frames := captureStackDefault(0)
	require.NotEmpty(t, frames)
	assert.Contains(t, frames[0].Function, "TestCaptureStack_FirstFrameIsCaller")
	assert.True(t, strings.HasSuffix(frames[0].File, "stack_test.go"))
	assert.Greater(t, frames[0].Line, 0)
}

func TestCaptureStack_DepthBounded(t *testing.T) {
	t.Parallel()

	var deep func(n int) Stack
	deep = func(n int) Stack {
		if n == 0 {
			return captureStack(0, 4)
		}
		return deep(n - 1)
	}

	frames := deep(16)
	require.NotEmpty(t, frames)
	assert.LessOrEqual(t, len(frames), 4+1) // inline expansion may add a frame
}

func TestCaptureStack_SkipAdvancesStartFrame(t *testing.T) {
	t.Parallel()

	noSkip := captureStackDefault(0)
	skipped := captureStackDefault(1)

	require.NotEmpty(t, noSkip)
	require.NotEmpty(t, skipped)

	assert.Contains(t, noSkip[0].Function, "TestCaptureStack_SkipAdvancesStartFrame")
	assert.Contains(t, skipped[0].Function, "tRunner")
	assert.NotEqual(t, noSkip[0].Function, skipped[0].Function)
}
