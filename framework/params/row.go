package params

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PrivateParamPrefix marks a parameter that is visible to the test but never serialized
// into a query string.
const PrivateParamPrefix = "_"

// Param is a single named parameter value.
type Param struct {
	Name  string
	Value ldvalue.Value
}

// P is shorthand for constructing a Param.
func P(name string, value ldvalue.Value) Param {
	return Param{Name: name, Value: value}
}

// Row is one set of named parameter values for a test case.
//
// Keys keep their insertion order, which determines the serialized form of the row. Setting a
// key that already exists replaces its value without moving it. The zero value is an empty row.
// A Row is never modified in place; all methods return a new Row.
type Row struct {
	keys   []string
	values map[string]ldvalue.Value
}

// RowOf builds a Row from the given parameters, in order.
func RowOf(ps ...Param) Row {
	var r Row
	for _, p := range ps {
		r = r.With(p.Name, p.Value)
	}
	return r
}

// Len returns the number of keys in the row.
func (r Row) Len() int {
	return len(r.keys)
}

// Keys returns the row's keys in order.
func (r Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the value for a key, and whether the key is present.
func (r Row) Get(name string) (ldvalue.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value for a key, or a null value if it is absent.
func (r Row) Value(name string) ldvalue.Value {
	return r.values[name]
}

// With returns a copy of the row with the key set to the value.
func (r Row) With(name string, value ldvalue.Value) Row {
	ret := r.clone(1)
	if _, ok := ret.values[name]; !ok {
		ret.keys = append(ret.keys, name)
	}
	ret.values[name] = value
	return ret
}

// Merge returns the shallow concatenation of r and other. Keys of other overwrite keys of r.
func (r Row) Merge(other Row) Row {
	if other.Len() == 0 {
		return r
	}
	ret := r.clone(other.Len())
	for _, k := range other.keys {
		if _, ok := ret.values[k]; !ok {
			ret.keys = append(ret.keys, k)
		}
		ret.values[k] = other.values[k]
	}
	return ret
}

// Public returns the row without its private keys.
func (r Row) Public() Row {
	var ret Row
	for _, k := range r.keys {
		if !IsPrivate(k) {
			ret = ret.With(k, r.values[k])
		}
	}
	return ret
}

// Equal reports whether both rows have the same keys with equal values, ignoring key order.
func (r Row) Equal(other Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	for _, k := range r.keys {
		v, ok := other.values[k]
		if !ok || !v.Equal(r.values[k]) {
			return false
		}
	}
	return true
}

// String returns a human-readable form of the row, including private keys. It is not the
// canonical serialization; use StringifyPublicParams for that.
func (r Row) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString(":")
		b.WriteString(r.values[k].JSONString())
	}
	b.WriteString("}")
	return b.String()
}

func (r Row) clone(extra int) Row {
	ret := Row{
		keys:   make([]string, len(r.keys), len(r.keys)+extra),
		values: make(map[string]ldvalue.Value, len(r.keys)+extra),
	}
	copy(ret.keys, r.keys)
	for k, v := range r.values {
		ret.values[k] = v
	}
	return ret
}

// IsPrivate reports whether a parameter name is private.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, PrivateParamPrefix)
}
