package query

import (
	"strings"

	"github.com/webgpu-cts/cts-harness/framework/params"
)

// SpecID identifies one registered test file.
type SpecID struct {
	Suite string
	Path  string
}

// CaseID identifies one concrete case within a test file.
type CaseID struct {
	Test   string
	Params params.Row
}

const upperhex = "0123456789ABCDEF"

// These are meaningful in the query grammar, so they stay literal to keep URLs readable.
// Changing this list would break existing links.
var selectiveUnescaper = strings.NewReplacer(
	"%22", `"`,
	"%2C", ",",
	"%2F", "/",
	"%3A", ":",
	"%3D", "=",
	"%5B", "[",
	"%5D", "]",
	"%7B", "{",
	"%7D", "}",
)

// EncodeSelectively percent-encodes s exactly as JavaScript's encodeURIComponent does, then
// restores the characters " , / : = [ ] { } to their literal form.
func EncodeSelectively(s string) string {
	return selectiveUnescaper.Replace(encodeURIComponent(s))
}

func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// MakeQueryString returns the canonical query string for a test file, or for one case in it
// if tc is non-nil. It fails only if the case's public params cannot be serialized.
func MakeQueryString(spec SpecID, tc *CaseID) (string, error) {
	s := spec.Suite + ":" + spec.Path + ":"
	if tc != nil {
		p, err := params.StringifyPublicParams(tc.Params)
		if err != nil {
			return "", err
		}
		s += tc.Test + "=" + p
	}
	return EncodeSelectively(s), nil
}
