// integration_test.go — end-to-end flow through construction, wrapping,
// traversal, downcasting, and conversion.
package xgxreport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd_WrapTraverseDowncastConvert(t *testing.T) {
	t.Parallel()

	r := New(rootErr{42})
	r = WrapErr(r, layerOneMsg("layer one"))
	r = WrapErr(r, layerTwoMsg("layer two"))

	var got []string
	for c := r.Chain(); ; {
		e, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, e.Error())
	}
	if diff := cmp.Diff([]string{"layer two", "layer one", "root failure 42"}, got); diff != "" {
		t.Fatalf("chain mismatch (-want +got):\n%s", diff)
	}

	// Every layer is reachable by type without disturbing the Report.
	require.True(t, Is[layerTwoMsg](r))
	require.True(t, Is[layerOneMsg](r))
	require.True(t, Is[rootErr](r))
	require.False(t, Is[otherErr](r))

	leaf, ok := DowncastRef[rootErr](r)
	require.True(t, ok)
	assert.Equal(t, 42, leaf.code)

	// Conversion back to a plain error keeps the chain and the rendering.
	e := r.IntoError()
	require.NotNil(t, e)
	assert.Equal(t, "layer two", e.Error())

	var asLeaf rootErr
	require.True(t, errors.As(e, &asLeaf))
	assert.Equal(t, 42, asLeaf.code)

	verbose := fmt.Sprintf("%+v", e)
	assert.Contains(t, verbose, "Caused by:")
	assert.Contains(t, verbose, "root failure 42")
}

func TestEndToEnd_SentinelSurvivesEveryLayer(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("connection reset")

	r := New(fmt.Errorf("dial backend: %w", sentinel)).
		Wrap("refreshing cache").
		Wrap("serving request")

	require.True(t, errors.Is(r, sentinel))
	require.True(t, errors.Is(r.IntoError(), sentinel))
}

func TestEndToEnd_MoveOutMiddleLayerConsumesRest(t *testing.T) {
	t.Parallel()
	r := New(rootErr{9})
	r = WrapErr(r, layerOneMsg("layer one"))
	r = WrapErr(r, layerTwoMsg("layer two"))

	got, ok := Downcast[layerOneMsg](r)
	require.True(t, ok)
	assert.Equal(t, layerOneMsg("layer one"), got)

	assert.Nil(t, r.Err())
	assert.Equal(t, "<nil>", r.Error())
	assert.False(t, Is[rootErr](r))
}
