package unittests

import (
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/tree"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func testGroupGroup() *tree.Group {
	g := tree.NewGroup()

	g.PTest("names", params.FromRows(
		params.RowOf(params.P("name", ldvalue.String("ok_name-1")), params.P("valid", ldvalue.Bool(true))),
		params.RowOf(params.P("name", ldvalue.String("with space")), params.P("valid", ldvalue.Bool(true))),
		params.RowOf(params.P("name", ldvalue.String("bad name!")), params.P("valid", ldvalue.Bool(false))),
		params.RowOf(params.P("name", ldvalue.String("a:b")), params.P("valid", ldvalue.Bool(false))),
	), func(t *tree.T) {
		err := tree.NewGroup().Add(t.Param("name").StringValue(), nil, func(*tree.T) {})
		if t.Param("valid").BoolValue() {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, tree.ErrInvalidTestName)
		}
	})

	g.Test("duplicate", func(t *tree.T) {
		inner := tree.NewGroup()
		assert.NoError(t, inner.Add("a", nil, func(*tree.T) {}))
		assert.ErrorIs(t, inner.Add("a", nil, func(*tree.T) {}), tree.ErrDuplicateTestName)
	})

	g.Test("expansion is deferred", func(t *tree.T) {
		inner := tree.NewGroup()
		calls := 0
		inner.PTest("a", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}), func(*tree.T) { calls++ })
		n := 0
		for range inner.Cases() {
			n++
		}
		assert.Equal(t, 2, n)
		assert.Equal(t, 0, calls)
	})

	return g
}
