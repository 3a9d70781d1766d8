package derive

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	intermediate := `{
  "stage": "intermediate2",
  "filter": "name",
  "count": 2,
  "items": [
    {"source_path": "$.x.name", "name_path": "$.x.name", "name": "A", "field_name": "name", "name_field_value": "A", "seq": 0},
    {"source_path": "$.y.name", "name_path": "$.y.name", "name": "B", "field_name": "name", "name_field_value": "B", "seq": 1}
  ]
}`
	out, err := Transform(intermediate)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"0": "A", "1": "B"}, got)
}

func TestTransformLexicographicKeyOrder(t *testing.T) {
	var items []string
	for i := 0; i < 12; i++ {
		items = append(items, fmt.Sprintf(
			`{"source_path": "$.a", "name_path": "$.a", "name": "v%d", "field_name": "a", "name_field_value": "", "seq": %d}`, i, i))
	}
	intermediate := fmt.Sprintf(`{"stage": "intermediate2", "filter": "a", "count": 12, "items": [%s]}`,
		strings.Join(items, ","))

	out, err := Transform(intermediate)
	require.NoError(t, err)

	// Keys are sorted as text: "10" comes before "2".
	i10 := strings.Index(out, `"10"`)
	i2 := strings.Index(out, `"2"`)
	require.Positive(t, i10)
	require.Positive(t, i2)
	assert.Less(t, i10, i2)
}

func TestTransformMalformedInputs(t *testing.T) {
	_, err := Transform("not json")
	require.Error(t, err)

	// Missing or malformed items degrade to an empty mapping, not an error.
	out, err := Transform(`{"stage": "intermediate2"}`)
	require.NoError(t, err)
	assert.Equal(t, "{}", out)

	out, err = Transform(`{"items": [42, {"seq": -3, "name": "x"}]}`)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"0": "x"}, got)
}
