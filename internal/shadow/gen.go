package shadow

import (
	"fmt"
	"strconv"
)

// GenerateDocument produces a synthetic nested document for benchmarks and
// load tests: a metadata block, a nested object of the requested depth and
// width mixing every scalar kind, and a wide items array.
func GenerateDocument(depth, width int) map[string]any {
	root := map[string]any{
		"metadata": map[string]any{
			"generated_at": "2025-01-09T10:00:00Z",
			"depth":        depth,
			"width":        width,
			"description":  "synthetic load-test document",
		},
		"data": generateNested(0, depth, width),
	}

	items := make([]any, 0, width*10)
	for i := 0; i < width*10; i++ {
		items = append(items, map[string]any{
			"id":     i,
			"name":   "item_" + strconv.Itoa(i),
			"value":  i * 2,
			"active": i%3 == 0,
		})
	}
	root["items"] = items
	return root
}

func generateNested(depth, maxDepth, width int) any {
	if depth >= maxDepth {
		return "leaf value"
	}
	obj := make(map[string]any, width)
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("field_%d", i)
		switch i % 5 {
		case 0:
			obj[key] = fmt.Sprintf("string_value_%d", i)
		case 1:
			obj[key] = i
		case 2:
			obj[key] = i%2 == 0
		case 3:
			obj[key] = []any{1, 2, 3, i}
		default:
			obj[key] = generateNested(depth+1, maxDepth, width/2)
		}
	}
	return obj
}
