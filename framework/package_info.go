// Package framework contains the test harness infrastructure that is shared by every suite.
// The base package contains the test context, results, filters, and loggers; the
// subpackages hold the rest:
//
// 1. params builds lazy sequences of parameter rows with combinators such as Options and
// Combine.
//
// 2. tree is a registry of named, parameterized tests for one test file. Expanding it yields
// one deferred case per parameter row.
//
// 3. query is the codec for query strings of the form suite:path:test=params, which address
// a single case (or a set of cases) and are used in listings, filters, and reports.
//
// 4. loader owns the registered test files of a run and expands queries into cases.
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Cases always run one at a time, in registration order.
package framework
