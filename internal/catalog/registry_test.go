package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/codeapi/internal/config"
)

func TestRegistry_ByNumber(t *testing.T) {
	t.Parallel()

	reg := Build(context.Background(), []*config.Unit{numbersUnit("app", 200, 404)})

	code, ok := reg.ByNumber(404)
	require.True(t, ok)
	assert.Equal(t, 404, code.Number)
	assert.Equal(t, "code 404", code.Message)

	_, ok = reg.ByNumber(500)
	assert.False(t, ok)
}

func TestRegistry_AllSorted(t *testing.T) {
	t.Parallel()

	reg := Build(context.Background(), []*config.Unit{
		numbersUnit("b", 500, 3, 201),
		numbersUnit("a", 200, -1, 50001),
	})

	assert.Equal(t, []int{-1, 3, 200, 201, 500, 50001}, numbersOf(reg.AllSorted()))

	// Each call builds a fresh slice.
	first := reg.AllSorted()
	first[0] = Code{}
	assert.Equal(t, -1, reg.AllSorted()[0].Number)
}

func TestRegistry_Search(t *testing.T) {
	t.Parallel()

	reg := Build(context.Background(), []*config.Unit{numbersUnit("http", 200, 201, 210, 299)})

	testCases := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "wildcard middle position", query: "2x0", want: []int{200, 210}},
		{name: "wildcard all positions", query: "2xx", want: []int{200, 201, 210, 299}},
		{name: "uppercase marker", query: "2X9", want: []int{299}},
		{name: "mixed markers", query: "xX1", want: []int{201}},
		{name: "literal hit", query: "201", want: []int{201}},
		{name: "literal is not a prefix", query: "20", want: []int{}},
		{name: "single digit literal", query: "2", want: []int{}},
		{name: "wildcard prefix", query: "2x", want: []int{200, 201, 210, 299}},
		{name: "wildcard longer than every key", query: "2xxx", want: []int{}},
		{name: "wildcard without match", query: "3xx", want: []int{}},
		{name: "empty query", query: "", want: []int{}},
		{name: "non numeric literal", query: "abc", want: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := reg.Search(tc.query)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, numbersOf(got))
		})
	}
}

func TestRegistry_SearchPrefixMatchesLongerKeys(t *testing.T) {
	t.Parallel()

	reg := Build(context.Background(), []*config.Unit{numbersUnit("mixed", 2001, 2, 20, 3)})

	assert.Equal(t, []int{20, 2001}, numbersOf(reg.Search("2x")))
	assert.Equal(t, []int{2, 3, 20, 2001}, numbersOf(reg.Search("x")))
	assert.Equal(t, []int{2}, numbersOf(reg.Search("2")))
}

func TestRegistry_SearchLiteralEqualsByNumber(t *testing.T) {
	t.Parallel()

	reg := Build(context.Background(), []*config.Unit{
		enumUnit("app", nil, entry(200, "OK"), coloredEntry(500, "Error", "#ff0000")),
	})

	code, ok := reg.ByNumber(500)
	require.True(t, ok)
	assert.Equal(t, []Code{code}, reg.Search("500"))
}

func TestIsWildcard(t *testing.T) {
	t.Parallel()

	assert.True(t, IsWildcard("2xx"))
	assert.True(t, IsWildcard("X"))
	assert.False(t, IsWildcard("200"))
	assert.False(t, IsWildcard(""))
}

func TestMatchKey(t *testing.T) {
	t.Parallel()

	assert.True(t, matchKey("2x0", "200"))
	assert.True(t, matchKey("2x", "2999"))
	assert.False(t, matchKey("2xx", "20"))
	assert.False(t, matchKey("3x", "200"))
	assert.True(t, matchKey("-x", "-5"))
}

func TestCode_String(t *testing.T) {
	t.Parallel()

	code := Code{Number: 200, Message: "OK"}
	assert.Equal(t, `200: "OK"`, code.String())
	assert.Equal(t, "200", code.Key())
	assert.False(t, code.HasColor())
}
