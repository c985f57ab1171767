package query

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/webgpu-cts/cts-harness/framework/params"
)

// ErrInvalidQuery is returned by Parse for a string that is not a valid query.
var ErrInvalidQuery = errors.New("invalid query")

// Level says how much of a test tree a Query selects.
type Level int

const (
	// MultiFile selects every file under a path prefix: "suite:" or "suite:dir/sub".
	MultiFile Level = iota + 1
	// SingleFile selects every test in one file: "suite:path:".
	SingleFile
	// SingleTest selects every case of one test: "suite:path:test".
	SingleTest
	// SingleCase selects the one case with exactly these public params: "suite:path:test={...}".
	SingleCase
	// CaseSubset selects every case whose public params include these: "suite:path:test~{...}".
	CaseSubset
)

var (
	validSuite    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	validSegment  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	validTestName = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
)

// Query is a parsed query string.
type Query struct {
	Level  Level
	Suite  string
	Path   string
	Test   string
	Params params.Row
}

// ValidSuiteName reports whether s can be used as a suite name.
func ValidSuiteName(s string) bool {
	return validSuite.MatchString(s)
}

// ValidPath reports whether p is a slash-delimited file path usable in a query.
func ValidPath(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if !validSegment.MatchString(seg) {
			return false
		}
	}
	return true
}

// ValidTestName reports whether s can be used as a test name: letters, digits, space,
// underscore, and hyphen.
func ValidTestName(s string) bool {
	return validTestName.MatchString(s)
}

// Parse decodes a query string produced by MakeQueryString, or one of the broader forms
// described by Level.
func Parse(s string) (Query, error) {
	var q Query
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return q, fmt.Errorf("%w: %q: %s", ErrInvalidQuery, s, err)
	}

	suite, rest, ok := strings.Cut(decoded, ":")
	if !ok || !ValidSuiteName(suite) {
		return q, fmt.Errorf("%w: %q: must begin with a suite name and a colon", ErrInvalidQuery, s)
	}
	q.Suite = suite

	path, rest, ok := strings.Cut(rest, ":")
	if !ok {
		q.Level = MultiFile
		q.Path = strings.TrimSuffix(path, "/")
		if q.Path != "" && !ValidPath(q.Path) {
			return q, fmt.Errorf("%w: %q: bad path %q", ErrInvalidQuery, s, path)
		}
		return q, nil
	}
	if !ValidPath(path) {
		return q, fmt.Errorf("%w: %q: bad path %q", ErrInvalidQuery, s, path)
	}
	q.Path = path
	if rest == "" {
		q.Level = SingleFile
		return q, nil
	}

	i := strings.IndexAny(rest, "=~")
	if i < 0 {
		q.Level = SingleTest
		q.Test = rest
	} else {
		q.Test = rest[:i]
		if rest[i] == '=' {
			q.Level = SingleCase
		} else {
			q.Level = CaseSubset
		}
		q.Params, err = params.ParsePublicParams(rest[i+1:])
		if err != nil {
			return q, fmt.Errorf("%w: %q: %s", ErrInvalidQuery, s, err)
		}
	}
	if !ValidTestName(q.Test) {
		return q, fmt.Errorf("%w: %q: bad test name %q", ErrInvalidQuery, s, q.Test)
	}
	return q, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Query {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// Spec returns the file this query names. It is only meaningful above MultiFile level.
func (q Query) Spec() SpecID {
	return SpecID{Suite: q.Suite, Path: q.Path}
}

// MatchesSpec reports whether the query could select any case in the given file.
func (q Query) MatchesSpec(spec SpecID) bool {
	if spec.Suite != q.Suite {
		return false
	}
	if q.Level == MultiFile {
		return q.Path == "" || spec.Path == q.Path || strings.HasPrefix(spec.Path, q.Path+"/")
	}
	return spec.Path == q.Path
}

// MatchesCase reports whether the query selects the given case.
func (q Query) MatchesCase(spec SpecID, tc CaseID) bool {
	if !q.MatchesSpec(spec) {
		return false
	}
	switch q.Level {
	case MultiFile, SingleFile:
		return true
	case SingleTest:
		return tc.Test == q.Test
	case SingleCase:
		return tc.Test == q.Test && params.PublicParamsEqual(tc.Params, q.Params)
	case CaseSubset:
		return tc.Test == q.Test && params.PublicParamsContain(tc.Params, q.Params)
	}
	return false
}

// String returns the query in its encoded form.
func (q Query) String() string {
	var s string
	switch q.Level {
	case MultiFile:
		s = q.Suite + ":" + q.Path
	case SingleFile:
		s = q.Suite + ":" + q.Path + ":"
	case SingleTest:
		s = q.Suite + ":" + q.Path + ":" + q.Test
	case SingleCase, CaseSubset:
		sep := "="
		if q.Level == CaseSubset {
			sep = "~"
		}
		// Parsed params always serialize.
		p, _ := params.StringifyPublicParams(q.Params)
		s = q.Suite + ":" + q.Path + ":" + q.Test + sep + p
	}
	return EncodeSelectively(s)
}
