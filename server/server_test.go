package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/webgpu-cts/cts-harness/framework/loader"
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/tree"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestLoader(t *testing.T) *loader.Loader {
	g := tree.NewGroup()
	g.PTest("even", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(2)}), func(t *tree.T) {
		assert.Equal(t, 0, t.Param("x").IntValue()%2)
	})
	g.Test("skipped", func(t *tree.T) { t.SkipWithReason("nope") })
	l := loader.New()
	require.NoError(t, l.Register("s", "p", g))
	return l
}

func getJSON(t *testing.T, server *httptest.Server, path string, qs []string, target interface{}) int {
	u := server.URL + path
	if len(qs) > 0 {
		u += "?" + url.Values{"q": qs}.Encode()
	}
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

func TestListing(t *testing.T) {
	s := New(makeTestLoader(t), nil)
	httphelpers.WithServer(s.Handler(), func(server *httptest.Server) {
		var listing []string
		require.Equal(t, 200, getJSON(t, server, "/listing", nil, &listing))
		assert.Equal(t, []string{`s:p:even={"x":1}`, `s:p:even={"x":2}`, `s:p:skipped={}`}, listing)

		require.Equal(t, 200, getJSON(t, server, "/listing", []string{"s:p:skipped"}, &listing))
		assert.Equal(t, []string{`s:p:skipped={}`}, listing)

		var empty []string
		require.Equal(t, 200, getJSON(t, server, "/listing", []string{"other:"}, &empty))
		assert.Equal(t, []string{}, empty)
	})
}

func TestRun(t *testing.T) {
	s := New(makeTestLoader(t), nil)
	httphelpers.WithServer(s.Handler(), func(server *httptest.Server) {
		var resp RunResponse
		require.Equal(t, 200, getJSON(t, server, "/run", nil, &resp))
		assert.False(t, resp.OK)
		assert.Equal(t, 0, resp.Passed+resp.Failed+resp.Skipped-3)
		require.Len(t, resp.Tests, 3)
		assert.Equal(t, "fail", resp.Tests[0].Status)
		assert.NotEmpty(t, resp.Tests[0].Errors)
		assert.Equal(t, "pass", resp.Tests[1].Status)
		assert.Equal(t, "skip", resp.Tests[2].Status)
		assert.Equal(t, "nope", resp.Tests[2].SkipReason)

		var one RunResponse
		require.Equal(t, 200, getJSON(t, server, "/run", []string{`s:p:even={"x":2}`}, &one))
		assert.True(t, one.OK)
		require.Len(t, one.Tests, 1)
		assert.Equal(t, `s:p:even={"x":2}`, one.Tests[0].Query)
	})
}

func TestRunReportsStatusOfEachCase(t *testing.T) {
	g := tree.NewGroup()
	calls := 0
	g.PTest("dup", params.Options("x", []ldvalue.Value{ldvalue.Int(1), ldvalue.Int(1)}), func(t *tree.T) {
		calls++
		if calls == 1 {
			t.Errorf("first call fails")
		}
	})
	l := loader.New()
	require.NoError(t, l.Register("s", "p", g))

	httphelpers.WithServer(New(l, nil).Handler(), func(server *httptest.Server) {
		var resp RunResponse
		require.Equal(t, 200, getJSON(t, server, "/run", nil, &resp))
		assert.Equal(t, 1, resp.Passed)
		assert.Equal(t, 1, resp.Failed)
		require.Len(t, resp.Tests, 2)
		assert.Equal(t, resp.Tests[0].Query, resp.Tests[1].Query)
		assert.Equal(t, "fail", resp.Tests[0].Status)
		assert.Equal(t, "pass", resp.Tests[1].Status)
	})
}

func TestRunAfterPanicDoesNotBlock(t *testing.T) {
	g := tree.NewGroup()
	g.PTest("broken", func(yield func(params.Row) bool) {
		panic("cannot expand")
	}, func(t *tree.T) {})
	l := loader.New()
	require.NoError(t, l.Register("s", "p", g))

	httphelpers.WithServer(New(l, nil).Handler(), func(server *httptest.Server) {
		assert.Equal(t, 500, getJSON(t, server, "/run", nil, nil))

		done := make(chan int, 1)
		go func() {
			resp, err := http.Get(server.URL + "/run")
			if err != nil {
				done <- 0
				return
			}
			resp.Body.Close()
			done <- resp.StatusCode
		}()
		select {
		case status := <-done:
			assert.Equal(t, 500, status)
		case <-time.After(5 * time.Second):
			require.Fail(t, "second /run did not return")
		}
	})
}

func TestBadQuery(t *testing.T) {
	s := New(makeTestLoader(t), nil)
	httphelpers.WithServer(s.Handler(), func(server *httptest.Server) {
		assert.Equal(t, 400, getJSON(t, server, "/run", []string{"no-colon"}, nil))
		assert.Equal(t, 400, getJSON(t, server, "/listing", []string{"s:p:bad!"}, nil))
	})
}

func TestStart(t *testing.T) {
	s := New(makeTestLoader(t), nil)
	server, err := Start("127.0.0.1:0", s.Handler(), nil)
	require.NoError(t, err)
	defer server.Close()
}
