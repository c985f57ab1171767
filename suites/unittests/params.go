package unittests

import (
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/tree"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strValues(ss ...string) []ldvalue.Value {
	ret := make([]ldvalue.Value, 0, len(ss))
	for _, s := range ss {
		ret = append(ret, ldvalue.String(s))
	}
	return ret
}

func requireRowsEqual(t *tree.T, expected, actual []params.Row) {
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(actual[i]), "row %d: expected %s, got %s", i, expected[i], actual[i])
	}
}

func paramsGroup() *tree.Group {
	g := tree.NewGroup()

	g.Test("punit", func(t *tree.T) {
		requireRowsEqual(t, []params.Row{{}}, params.Collect(params.Unit()))
	})

	// Every length up to 3, so the empty option list is covered.
	lengths := params.Options("n", []ldvalue.Value{ldvalue.Int(0), ldvalue.Int(1), ldvalue.Int(2), ldvalue.Int(3)})
	g.PTest("poptions", lengths, func(t *tree.T) {
		values := make([]ldvalue.Value, 0)
		for i := 0; i < t.Param("n").IntValue(); i++ {
			values = append(values, ldvalue.Int(i*10))
		}
		rows := params.Collect(params.Options("x", values))
		require.Len(t, rows, len(values))
		for i, r := range rows {
			assert.Equal(t, []string{"x"}, r.Keys())
			assert.True(t, values[i].Equal(r.Value("x")))
		}
	})

	g.Test("pcombine empty", func(t *tree.T) {
		requireRowsEqual(t, []params.Row{{}}, params.Collect(params.Combine()))
	})

	g.PTest("pcombine size", params.Combine(
		params.Options("a", []ldvalue.Value{ldvalue.Int(0), ldvalue.Int(1), ldvalue.Int(3)}),
		params.Options("b", []ldvalue.Value{ldvalue.Int(0), ldvalue.Int(2)}),
	), func(t *tree.T) {
		na, nb := t.Param("a").IntValue(), t.Param("b").IntValue()
		p := params.Combine(
			params.Options("x", make([]ldvalue.Value, na)),
			params.Options("y", make([]ldvalue.Value, nb)),
		)
		assert.Equal(t, na*nb, params.Count(p))
	})

	g.Test("pcombine order", func(t *tree.T) {
		p := params.Combine(params.Options("a", strValues("a1", "a2")), params.Options("b", strValues("b1", "b2")))
		row := func(a, b string) params.Row {
			return params.RowOf(params.P("a", ldvalue.String(a)), params.P("b", ldvalue.String(b)))
		}
		requireRowsEqual(t, []params.Row{
			row("a1", "b1"), row("a1", "b2"), row("a2", "b1"), row("a2", "b2"),
		}, params.Collect(p))
	})

	g.Test("pcombine overwrite", func(t *tree.T) {
		p := params.Combine(params.Options("x", strValues("first")), params.Options("x", strValues("second")))
		requireRowsEqual(t, []params.Row{params.RowOf(params.P("x", ldvalue.String("second")))}, params.Collect(p))
	})

	g.PTest("private params", params.Combine(
		params.Options("x", []ldvalue.Value{ldvalue.Int(1)}),
		params.Options("_state", []ldvalue.Value{ldvalue.ObjectBuild().Set("k", ldvalue.Int(1)).Build()}),
	), func(t *tree.T) {
		assert.Equal(t, ldvalue.ObjectType, t.Param("_state").Type())
		s, err := params.StringifyPublicParams(t.Params())
		require.NoError(t, err)
		assert.Equal(t, `{"x":1}`, s)
	})

	return g
}
