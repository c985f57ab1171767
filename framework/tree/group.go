package tree

import (
	"errors"
	"fmt"
	"iter"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/query"
)

var (
	// ErrInvalidTestName means a test name has characters other than letters, digits, space,
	// underscore, and hyphen.
	ErrInvalidTestName = errors.New("invalid test name")
	// ErrDuplicateTestName means a test name was registered twice in one group.
	ErrDuplicateTestName = errors.New("duplicate test name")
)

type entry struct {
	name   string
	params params.Params
	fn     func(*T)
}

// Group is the registry of tests for one test file. Entries are only ever appended; to start
// over, create a new Group.
type Group struct {
	entries []entry
	names   map[string]struct{}
}

// NewGroup creates an empty Group.
func NewGroup() *Group {
	return &Group{names: make(map[string]struct{})}
}

// Add registers a test that runs fn once for every row of p. A nil p is the same as
// params.Unit(). fn is not called until the group's cases are run.
func (g *Group) Add(name string, p params.Params, fn func(*T)) error {
	if !query.ValidTestName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTestName, name)
	}
	if _, ok := g.names[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTestName, name)
	}
	if fn == nil {
		return fmt.Errorf("test %q has no function", name)
	}
	if p == nil {
		p = params.Unit()
	}
	g.names[name] = struct{}{}
	g.entries = append(g.entries, entry{name: name, params: p, fn: fn})
	return nil
}

// Test registers an unparameterized test. It panics if the name is invalid or already used.
func (g *Group) Test(name string, fn func(*T)) {
	g.PTest(name, params.Unit(), fn)
}

// PTest registers a parameterized test. It panics if the name is invalid or already used.
func (g *Group) PTest(name string, p params.Params, fn func(*T)) {
	if err := g.Add(name, p, fn); err != nil {
		panic(err)
	}
}

// Names returns the test names in registration order.
func (g *Group) Names() []string {
	ret := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		ret = append(ret, e.name)
	}
	return ret
}

// Case is one deferred invocation of a test function with a single parameter row.
type Case struct {
	ID query.CaseID
	fn func(*T)
}

// Run calls the test function with a T bound to c.
func (tc Case) Run(c *framework.Context) {
	t := &T{context: c, params: tc.ID.Params}
	defer t.runDeferred()
	tc.fn(t)
}

// Cases expands the group: for each test in registration order, one Case per row of its
// params, in iteration order. No test function is called.
func (g *Group) Cases() iter.Seq[Case] {
	entries := g.entries[:len(g.entries):len(g.entries)]
	return func(yield func(Case) bool) {
		for _, e := range entries {
			for row := range e.params {
				if !yield(Case{ID: query.CaseID{Test: e.name, Params: row}, fn: e.fn}) {
					return
				}
			}
		}
	}
}
