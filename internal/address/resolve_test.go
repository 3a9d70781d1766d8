package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"items": []any{
			map[string]any{"title": "first", "name": "one"},
			map[string]any{"title": "second", "name": "two"},
		},
		"meta": map[string]any{"version": "1.2.3"},
	}
}

func TestFirst(t *testing.T) {
	doc := sampleDoc()

	res, err := First(doc, "$.items[1].title")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "second", res.Value)

	res, err = First(doc, "$.missing")
	require.NoError(t, err)
	assert.False(t, res.Found)

	_, err = First(doc, "not an address")
	require.Error(t, err)
}

func TestFirstRoot(t *testing.T) {
	doc := sampleDoc()
	res, err := First(doc, "$")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, doc, res.Value)
}

func TestResolveSet(t *testing.T) {
	doc := sampleDoc()
	want := map[string]struct{}{
		"$.items[0].title": {},
		"$.items[0].name":  {},
		"$.meta.version":   {},
		"$.nowhere":        {},
	}
	got, err := ResolveSet(doc, want)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "first", got["$.items[0].title"].Value)
	assert.Equal(t, "one", got["$.items[0].name"].Value)
	assert.Equal(t, "1.2.3", got["$.meta.version"].Value)
	assert.False(t, got["$.nowhere"].Found)
}
