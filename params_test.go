package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/query"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFlags(t *testing.T) {
	var c commandParams
	require.True(t, c.Read([]string{"cts", "-q", "unittests:params:", "-run", "pcombine", "-v", "unittests:query_string:"}))
	assert.Equal(t, queryList{"unittests:params:", "unittests:query_string:"}, c.queries)
	assert.True(t, c.filters.MustMatch.IsDefined())
	assert.True(t, c.verbose)
}

func TestReadConfigIsOverriddenByFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
queries: ["unittests:params:"]
skip: ["slow"]
serve: "localhost:9000"
debug: true
`), 0o600))

	var c commandParams
	require.True(t, c.Read([]string{"cts", "-config", path, "-serve", ""}))
	assert.Equal(t, queryList{"unittests:params:"}, c.queries)
	assert.True(t, c.filters.MustNotMatch.AnyMatch("a slow test"))
	assert.Equal(t, "", c.serve)
	assert.True(t, c.debug)

	var c2 commandParams
	require.True(t, c2.Read([]string{"cts", "-config", path, "-q", "unittests:"}))
	assert.Equal(t, queryList{"unittests:"}, c2.queries)
	assert.Equal(t, "localhost:9000", c2.serve)
}

func TestReadBadConfig(t *testing.T) {
	var c commandParams
	assert.False(t, c.Read([]string{"cts", "-config", filepath.Join(t.TempDir(), "missing.yaml")}))
}

func TestRerunCommandQuotesQuery(t *testing.T) {
	id, err := framework.NewTestID(query.SpecID{Suite: "s", Path: "p"},
		query.CaseID{Test: "t", Params: params.RowOf(params.P("x", ldvalue.Int(1)))})
	require.NoError(t, err)
	assert.Equal(t, `./cts -debug -q 's:p:t={"x":1}'`, rerunCommand("./cts", id, true))
}

func TestRunListsCases(t *testing.T) {
	assert.Equal(t, 0, run([]string{"cts", "-list", "unittests:params:punit"}))
	assert.Equal(t, 2, run([]string{"cts", "-list", "not a query"}))
}

func TestRunUnittestsSuite(t *testing.T) {
	assert.Equal(t, 0, run([]string{"cts", "unittests:"}))
}
