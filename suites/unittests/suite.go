// Package unittests is a suite of cases that check the harness itself, run through the harness.
package unittests

import (
	"github.com/webgpu-cts/cts-harness/framework/loader"
	"github.com/webgpu-cts/cts-harness/framework/tree"
)

const SuiteName = "unittests"

// Register adds every test file of the suite to l.
func Register(l *loader.Loader) error {
	for _, f := range []struct {
		path  string
		group func() *tree.Group
	}{
		{"params", paramsGroup},
		{"query_string", queryStringGroup},
		{"test_group", testGroupGroup},
	} {
		if err := l.Register(SuiteName, f.path, f.group()); err != nil {
			return err
		}
	}
	return nil
}
