package tree

import (
	"testing"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/query"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGroup(t *testing.T, g *Group) framework.Results {
	spec := query.SpecID{Suite: "s", Path: "p"}
	return framework.Run(nil, nil, func(c *framework.Context) {
		for tc := range g.Cases() {
			id, err := framework.NewTestID(spec, tc.ID)
			require.NoError(t, err)
			c.Run(id, tc.Run)
		}
	})
}

func TestAddValidatesNames(t *testing.T) {
	g := NewGroup()
	assert.NoError(t, g.Add("ok_name-1", nil, func(*T) {}))
	assert.ErrorIs(t, g.Add("bad name!", nil, func(*T) {}), ErrInvalidTestName)
	assert.ErrorIs(t, g.Add("", nil, func(*T) {}), ErrInvalidTestName)
	assert.ErrorIs(t, g.Add("ok_name-1", nil, func(*T) {}), ErrDuplicateTestName)
	assert.Error(t, g.Add("no function", nil, nil))
	assert.Equal(t, []string{"ok_name-1"}, g.Names())
}

func TestTestAndPTestPanicOnBadNames(t *testing.T) {
	g := NewGroup()
	g.Test("a", func(*T) {})
	assert.Panics(t, func() { g.Test("a", func(*T) {}) })
	assert.Panics(t, func() { g.PTest("b?", params.Unit(), func(*T) {}) })
}

func TestRegistrationDoesNotCallTests(t *testing.T) {
	g := NewGroup()
	called := false
	g.Test("a", func(*T) { called = true })
	g.PTest("b", params.Options("x", []ldvalue.Value{ldvalue.Int(1)}), func(*T) { called = true })
	for range g.Cases() {
	}
	assert.False(t, called)
}

func TestCasesFollowRegistrationThenIterationOrder(t *testing.T) {
	g := NewGroup()
	var calls []string
	record := func(t *T) {
		s, err := params.StringifyPublicParams(t.Params())
		if err != nil {
			t.FailNow()
		}
		calls = append(calls, t.ID().Case.Test+s)
	}
	g.PTest("second", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}), record)
	g.Test("first", record)
	g.PTest("third", params.Combine(
		params.Options("a", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}),
		params.Options("b", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}),
	), record)

	results := runGroup(t, g)
	assert.True(t, results.OK())
	assert.Equal(t, []string{
		`second{"x":1}`,
		`second{"x":2}`,
		`first{}`,
		`third{"a":1,"b":1}`,
		`third{"a":1,"b":2}`,
		`third{"a":2,"b":1}`,
		`third{"a":2,"b":2}`,
	}, calls)
}

func TestTWorksWithTestifyAssertions(t *testing.T) {
	g := NewGroup()
	g.PTest("check", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}), func(t *T) {
		require.Equal(t, 1, t.Param("x").IntValue())
	})
	results := runGroup(t, g)
	require.Len(t, results.Tests, 2)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, `s:p:check={"x":2}`, results.Failures[0].TestID.String())
}

func TestDeferredCleanupsRunInReverseEvenOnFailure(t *testing.T) {
	g := NewGroup()
	var order []int
	g.Test("a", func(t *T) {
		t.Defer(func() { order = append(order, 1) })
		t.Defer(func() { order = append(order, 2) })
		t.FailNow()
	})
	results := runGroup(t, g)
	assert.False(t, results.OK())
	assert.Equal(t, []int{2, 1}, order)
}

func TestSkip(t *testing.T) {
	g := NewGroup()
	g.Test("a", func(t *T) { t.SkipWithReason("unsupported") })
	results := runGroup(t, g)
	assert.True(t, results.OK())
	require.Len(t, results.Tests, 1)
	assert.True(t, results.Tests[0].Skipped)
}

func TestCasesStopEarly(t *testing.T) {
	g := NewGroup()
	g.PTest("a", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2), ldvalue.Int(3)}), func(*T) {})
	n := 0
	for range g.Cases() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
