// Package loader owns the test files registered for a run and turns queries into cases.
package loader

import (
	"errors"
	"fmt"
	"iter"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/query"
	"github.com/webgpu-cts/cts-harness/framework/tree"
)

var (
	ErrInvalidSpec   = errors.New("invalid test file address")
	ErrDuplicateSpec = errors.New("duplicate test file address")
)

type spec struct {
	id    query.SpecID
	group *tree.Group
}

// Loader is a listing of test files, each a tree.Group registered under a suite and path.
type Loader struct {
	specs []spec
	index map[query.SpecID]struct{}
}

// Runnable is one expanded case, ready to run.
type Runnable struct {
	ID  framework.TestID
	Err error // set if the case's params cannot be serialized
	tc  tree.Case
}

func New() *Loader {
	return &Loader{index: make(map[query.SpecID]struct{})}
}

// Register adds a test file. The path is slash-delimited.
func (l *Loader) Register(suite, path string, g *tree.Group) error {
	id := query.SpecID{Suite: suite, Path: path}
	if !query.ValidSuiteName(suite) || !query.ValidPath(path) {
		return fmt.Errorf("%w: %q", ErrInvalidSpec, suite+":"+path)
	}
	if g == nil {
		return fmt.Errorf("%w: %q has no test group", ErrInvalidSpec, suite+":"+path)
	}
	if _, ok := l.index[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSpec, suite+":"+path)
	}
	l.index[id] = struct{}{}
	l.specs = append(l.specs, spec{id: id, group: g})
	return nil
}

// Specs returns the registered files in registration order.
func (l *Loader) Specs() []query.SpecID {
	ret := make([]query.SpecID, 0, len(l.specs))
	for _, s := range l.specs {
		ret = append(ret, s.id)
	}
	return ret
}

// Expand yields every case selected by any of the queries, or every case if there are no
// queries. Cases come in file registration order, then the order of each group's Cases.
func (l *Loader) Expand(queries ...query.Query) iter.Seq[Runnable] {
	specs := l.specs[:len(l.specs):len(l.specs)]
	return func(yield func(Runnable) bool) {
		for _, s := range specs {
			if !anyMatchesSpec(queries, s.id) {
				continue
			}
			for tc := range s.group.Cases() {
				if !anyMatchesCase(queries, s.id, tc.ID) {
					continue
				}
				id, err := framework.NewTestID(s.id, tc.ID)
				if !yield(Runnable{ID: id, Err: err, tc: tc}) {
					return
				}
			}
		}
	}
}

// Listing returns the query strings of every selected case.
func (l *Loader) Listing(queries ...query.Query) ([]string, error) {
	var ret []string
	for r := range l.Expand(queries...) {
		if r.Err != nil {
			return ret, fmt.Errorf("%s: %w", r.ID, r.Err)
		}
		ret = append(ret, r.ID.String())
	}
	return ret, nil
}

// Run runs every selected case, one at a time. A case whose params cannot be serialized is
// reported as failed without being run.
func (l *Loader) Run(filter framework.Filter, testLogger framework.TestLogger, queries ...query.Query) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		for r := range l.Expand(queries...) {
			if r.Err != nil {
				c.Fail(r.ID, r.Err)
				continue
			}
			c.Run(r.ID, r.tc.Run)
		}
	})
}

func anyMatchesSpec(queries []query.Query, id query.SpecID) bool {
	if len(queries) == 0 {
		return true
	}
	for _, q := range queries {
		if q.MatchesSpec(id) {
			return true
		}
	}
	return false
}

func anyMatchesCase(queries []query.Query, id query.SpecID, tc query.CaseID) bool {
	if len(queries) == 0 {
		return true
	}
	for _, q := range queries {
		if q.MatchesCase(id, tc) {
			return true
		}
	}
	return false
}
