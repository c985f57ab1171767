package unittests

import (
	"bytes"
	"testing"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/loader"
	"github.com/webgpu-cts/cts-harness/framework/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuitePasses(t *testing.T) {
	l := loader.New()
	require.NoError(t, Register(l))

	var buf bytes.Buffer
	results := l.Run(nil, &framework.ConsoleTestLogger{Out: &buf})
	if !results.OK() {
		framework.PrintResults(&buf, results)
	}
	assert.True(t, results.OK(), buf.String())
	assert.NotEmpty(t, results.Tests)
}

func TestSuiteCanBeSelectedByQuery(t *testing.T) {
	l := loader.New()
	require.NoError(t, Register(l))

	listing, err := l.Listing(query.MustParse("unittests:params:pcombine order"))
	require.NoError(t, err)
	assert.Equal(t, []string{"unittests:params:pcombine%20order={}"}, listing)
}

func TestRegisterTwiceFails(t *testing.T) {
	l := loader.New()
	require.NoError(t, Register(l))
	assert.ErrorIs(t, Register(l), loader.ErrDuplicateSpec)
}
