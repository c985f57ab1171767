package framework

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/webgpu-cts/cts-harness/framework/params"
	"github.com/webgpu-cts/cts-harness/framework/query"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Failed     bool
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Summary returns the number of passed, failed, and skipped cases. A case that failed before
// skipping counts as failed.
func (r Results) Summary() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Failed:
			failed++
		case t.Skipped:
			skipped++
		default:
			passed++
		}
	}
	return
}

// TestID identifies one concrete test case. Its string form is the case's query string.
type TestID struct {
	Spec  query.SpecID
	Case  query.CaseID
	query string
}

// NewTestID builds the ID of a case. It fails if the case's params cannot be serialized; the
// returned ID is still usable for reporting, with a best-effort string form.
func NewTestID(spec query.SpecID, tc query.CaseID) (TestID, error) {
	id := TestID{Spec: spec, Case: tc}
	q, err := query.MakeQueryString(spec, &tc)
	if err != nil {
		id.query = spec.Suite + ":" + spec.Path + ":" + tc.Test + "=" + tc.Params.String()
		return id, err
	}
	id.query = q
	return id, nil
}

// Params returns the full parameter row of the case, including private params.
func (t TestID) Params() params.Row {
	return t.Case.Params
}

func (t TestID) String() string {
	return t.query
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run, listing every failed case.
func PrintResults(w io.Writer, results Results) {
	passed, failed, skipped := results.Summary()
	if failed > 0 {
		fmt.Fprintln(w, "FAILED TESTS:")
		for _, f := range results.Failures {
			fmt.Fprintf(w, "  %s\n", f.TestID)
			for _, err := range f.Errors {
				fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(err.Error(), "\n", "\n    "))
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
}
