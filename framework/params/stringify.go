package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrInvalidParameterType means a public parameter value cannot be serialized. The allowed
// types are finite number, string, boolean, null, and array of finite numbers.
var ErrInvalidParameterType = errors.New("invalid parameter type")

// CheckPublicParamType returns an error if v is not an allowed public parameter value.
func CheckPublicParamType(v ldvalue.Value) error {
	switch v.Type() {
	case ldvalue.StringType, ldvalue.BoolType, ldvalue.NullType:
		return nil
	case ldvalue.NumberType:
		if !isFinite(v) {
			return fmt.Errorf("%w: %v is not a finite number", ErrInvalidParameterType, v.Float64Value())
		}
		return nil
	case ldvalue.ArrayType:
		for i := 0; i < v.Count(); i++ {
			e := v.GetByIndex(i)
			if !e.IsNumber() {
				return fmt.Errorf("%w: array element %d is %s, not a number", ErrInvalidParameterType, i, e.Type())
			}
			if !isFinite(e) {
				return fmt.Errorf("%w: array element %d is not a finite number", ErrInvalidParameterType, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidParameterType, v.Type())
	}
}

func isFinite(v ldvalue.Value) bool {
	f := v.Float64Value()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// writeJSONString writes s as a JSON string literal. Unlike ldvalue's JSONString it does not
// escape <, > and &, so the result matches JavaScript's JSON.stringify.
func writeJSONString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // a string always encodes
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// StringifyPublicParams returns the canonical serialization of the row's public params: a JSON
// object with keys in row order. Keys whose value is null are left out. The same row always
// produces the same string.
func StringifyPublicParams(r Row) (string, error) {
	var b strings.Builder
	b.WriteString("{")
	n := 0
	for _, k := range r.keys {
		if IsPrivate(k) {
			continue
		}
		v := r.values[k]
		if err := CheckPublicParamType(v); err != nil {
			return "", fmt.Errorf("param %q: %w", k, err)
		}
		if v.IsNull() {
			continue
		}
		if n > 0 {
			b.WriteString(",")
		}
		writeJSONString(&b, k)
		b.WriteString(":")
		if v.Type() == ldvalue.StringType {
			writeJSONString(&b, v.StringValue())
		} else {
			b.WriteString(v.JSONString())
		}
		n++
	}
	b.WriteString("}")
	return b.String(), nil
}

// ParsePublicParams is the inverse of StringifyPublicParams. Key order is preserved. An empty
// string is an empty row.
func ParsePublicParams(s string) (Row, error) {
	var r Row
	if s == "" {
		return r, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return r, fmt.Errorf("params must be a JSON object: %q", s)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return r, fmt.Errorf("malformed params %q: %w", s, err)
		}
		key := tok.(string)
		if IsPrivate(key) {
			return r, fmt.Errorf("private param %q cannot appear in a query", key)
		}
		if _, dup := r.Get(key); dup {
			return r, fmt.Errorf("param %q appears more than once", key)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return r, fmt.Errorf("malformed value for param %q: %w", key, err)
		}
		raw = bytes.TrimSpace(raw)
		v := ldvalue.Parse(raw)
		if v.IsNull() && string(raw) != "null" {
			return r, fmt.Errorf("%w: param %q has unrepresentable value %s", ErrInvalidParameterType, key, raw)
		}
		if err := CheckPublicParamType(v); err != nil {
			return r, fmt.Errorf("param %q: %w", key, err)
		}
		r = r.With(key, v)
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return r, fmt.Errorf("params must be a JSON object: %q", s)
	}
	if _, err := dec.Token(); err != io.EOF {
		return r, fmt.Errorf("unexpected data after params: %q", s)
	}
	return r, nil
}

// PublicParamsEqual reports whether two rows have the same public params, ignoring key order
// and null values.
func PublicParamsEqual(a, b Row) bool {
	return PublicParamsContain(a, b) && PublicParamsContain(b, a)
}

// PublicParamsContain reports whether every public, non-null param of subset has an equal
// value in r.
func PublicParamsContain(r, subset Row) bool {
	for _, k := range subset.keys {
		v := subset.values[k]
		if IsPrivate(k) || v.IsNull() {
			continue
		}
		if !r.values[k].Equal(v) {
			return false
		}
	}
	return true
}
