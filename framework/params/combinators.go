package params

import (
	"errors"
	"fmt"
	"iter"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrAssertion is the panic value (wrapped) when a combinator is called with malformed input.
// These are mistakes in a test file, so they are never recovered by the combinators.
var ErrAssertion = errors.New("assertion failed")

// Params is a lazy sequence of parameter rows. Each range over it produces the rows again,
// in the same order.
type Params = iter.Seq[Row]

func assertf(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...)))
	}
}

// Unit returns a sequence of exactly one empty row.
func Unit() Params {
	return func(yield func(Row) bool) {
		yield(Row{})
	}
}

// Options returns one row {name: value} per value, in the order given. Duplicate values are
// not removed.
func Options(name string, values []ldvalue.Value) Params {
	assertf(name != "", "option name must not be empty")
	values = append([]ldvalue.Value(nil), values...)
	return func(yield func(Row) bool) {
		for _, v := range values {
			if !yield(Row{}.With(name, v)) {
				return
			}
		}
	}
}

// Combine returns the cartesian product of the sequences. Each output row is the merge of one
// row from every sequence, so a key in a later sequence overwrites the same key from an earlier
// one. The first sequence varies slowest. With no sequences the result is a single empty row.
func Combine(seqs ...Params) Params {
	for i, s := range seqs {
		assertf(s != nil, "sequence %d passed to Combine is nil", i)
	}
	seqs = append([]Params(nil), seqs...)
	return func(yield func(Row) bool) {
		combineInto(seqs, Row{}, yield)
	}
}

func combineInto(seqs []Params, prefix Row, yield func(Row) bool) bool {
	if len(seqs) == 0 {
		return yield(prefix)
	}
	for r := range seqs[0] {
		if !combineInto(seqs[1:], prefix.Merge(r), yield) {
			return false
		}
	}
	return true
}

// FromRows returns a sequence of the given rows.
func FromRows(rows ...Row) Params {
	rows = append([]Row(nil), rows...)
	return func(yield func(Row) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Filter returns the rows of p for which pred returns true.
func Filter(p Params, pred func(Row) bool) Params {
	assertf(p != nil, "sequence passed to Filter is nil")
	assertf(pred != nil, "predicate passed to Filter is nil")
	return func(yield func(Row) bool) {
		for r := range p {
			if pred(r) && !yield(r) {
				return
			}
		}
	}
}

// Exclude returns the rows of p whose public params are not equal to any of the excluded rows.
func Exclude(p Params, exclude []Row) Params {
	exclude = append([]Row(nil), exclude...)
	return Filter(p, func(r Row) bool {
		for _, e := range exclude {
			if PublicParamsEqual(r, e) {
				return false
			}
		}
		return true
	})
}

// Collect iterates p to completion and returns its rows.
func Collect(p Params) []Row {
	var ret []Row
	for r := range p {
		ret = append(ret, r)
	}
	return ret
}

// Count iterates p to completion and returns the number of rows.
func Count(p Params) int {
	n := 0
	for range p {
		n++
	}
	return n
}
