package unittests

import (
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/query"
	"github.com/webgpu-cts/cts-harness/framework/tree"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryStringGroup() *tree.Group {
	g := tree.NewGroup()

	g.PTest("encodeSelectively", params.FromRows(
		params.RowOf(params.P("in", ldvalue.String(`",/:=[]{}`)), params.P("out", ldvalue.String(`",/:=[]{}`))),
		params.RowOf(params.P("in", ldvalue.String("a b")), params.P("out", ldvalue.String("a%20b"))),
		params.RowOf(params.P("in", ldvalue.String("?&#%")), params.P("out", ldvalue.String("%3F%26%23%25"))),
		params.RowOf(params.P("in", ldvalue.String("-_.!~*'()")), params.P("out", ldvalue.String("-_.!~*'()"))),
	), func(t *tree.T) {
		assert.Equal(t, t.Param("out").StringValue(), query.EncodeSelectively(t.Param("in").StringValue()))
	})

	g.Test("spec only", func(t *tree.T) {
		s, err := query.MakeQueryString(query.SpecID{Suite: "s", Path: "p"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "s:p:", s)

		q, err := query.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, query.SpecID{Suite: "s", Path: "p"}, q.Spec())
	})

	g.PTest("round trip", params.Combine(
		params.Options("a", []ldvalue.Value{ldvalue.Int(1), ldvalue.Float64(-0.25)}),
		params.Options("b", []ldvalue.Value{ldvalue.String("x"), ldvalue.String("with space"), ldvalue.String("{:=}")}),
		params.Options("c", []ldvalue.Value{ldvalue.Null(), ldvalue.Bool(true), ldvalue.ArrayOf(ldvalue.Int(1), ldvalue.Int(2))}),
	), func(t *tree.T) {
		tc := query.CaseID{Test: "case", Params: t.Params()}
		s, err := query.MakeQueryString(query.SpecID{Suite: "s", Path: "a/b"}, &tc)
		require.NoError(t, err)

		q, err := query.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, query.SingleCase, q.Level)
		assert.Equal(t, "case", q.Test)
		assert.True(t, params.PublicParamsEqual(t.Params(), q.Params), "parsed %s", q.Params)
		assert.Equal(t, s, q.String())
	})

	g.Test("own id is addressable", func(t *tree.T) {
		q, err := query.Parse(t.ID().String())
		require.NoError(t, err)
		assert.True(t, q.MatchesCase(t.ID().Spec, t.ID().Case))
	})

	g.Test("invalid parameter type", func(t *tree.T) {
		tc := query.CaseID{Test: "case", Params: params.RowOf(params.P("x", ldvalue.ArrayOf(ldvalue.String("a"))))}
		_, err := query.MakeQueryString(query.SpecID{Suite: "s", Path: "p"}, &tc)
		assert.ErrorIs(t, err, params.ErrInvalidParameterType)
	})

	return g
}
