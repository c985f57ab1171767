package tree

import (
	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/params"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// T is passed to a test function for one case.
//
// It implements the same basic functionality as Go's testing.T, in an environment outside of
// the Go test runner. To make assertions, use the assert and require packages, passing the *T
// as if it were a *testing.T.
type T struct {
	context  *framework.Context
	params   params.Row
	deferred []func()
}

// Params returns the parameter row of this case, including private params.
func (t *T) Params() params.Row {
	return t.params
}

// Param returns one parameter value, or a null value if the case does not have it.
func (t *T) Param(name string) ldvalue.Value {
	return t.params.Value(name)
}

// ID returns the identifier of the running case.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) Failed() bool {
	return t.context.Failed()
}

func (t *T) Skip() {
	t.context.Skip()
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Defer schedules a cleanup function to run when the case finishes, whether it passed or not.
// Cleanups run in reverse order.
func (t *T) Defer(fn func()) {
	t.deferred = append(t.deferred, fn)
}

func (t *T) runDeferred() {
	for i := len(t.deferred) - 1; i >= 0; i-- {
		t.deferred[i]()
	}
	t.deferred = nil
}
