package params

import (
	"testing"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func TestRowWithKeepsPositionOfExistingKey(t *testing.T) {
	r := RowOf(P("a", ldvalue.Int(1)), P("b", ldvalue.Int(2))).With("a", ldvalue.Int(3))
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, 3, r.Value("a").IntValue())
}

func TestRowIsNotModifiedInPlace(t *testing.T) {
	r := RowOf(P("a", ldvalue.Int(1)))
	_ = r.With("b", ldvalue.Int(2))
	_ = r.Merge(RowOf(P("a", ldvalue.Int(5))))
	assert.Equal(t, []string{"a"}, r.Keys())
	assert.Equal(t, 1, r.Value("a").IntValue())
}

func TestRowPublic(t *testing.T) {
	r := RowOf(P("_x", ldvalue.Int(1)), P("y", ldvalue.Int(2)))
	assert.Equal(t, []string{"y"}, r.Public().Keys())
}

func TestRowGetMissing(t *testing.T) {
	_, ok := Row{}.Get("a")
	assert.False(t, ok)
	assert.True(t, Row{}.Value("a").IsNull())
}

func TestRowString(t *testing.T) {
	r := RowOf(P("a", ldvalue.Int(1)), P("_b", ldvalue.String("x")))
	assert.Equal(t, `{a:1,_b:"x"}`, r.String())
}
