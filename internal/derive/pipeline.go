// Package derive turns a filtered selection of indexed nodes into ordered,
// re-keyable artifacts: the intermediate product (filter matches with
// derived sibling-name addresses and contiguous sequence numbers) and the
// final product (a sequence→value projection of the intermediate product).
package derive

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oakwood-commons/jex/internal/address"
	"github.com/oakwood-commons/jex/internal/shadow"
)

// ProgressFunc receives coarse pipeline progress: a fraction in [0,1] and a
// short phase label. Implementations must be cheap; delivery is best-effort
// and never proportional to item count.
type ProgressFunc func(fraction float64, phase string)

// Stage identifies the intermediate-product artifact format.
const Stage = "intermediate2"

// Item is one entry of the intermediate product.
type Item struct {
	SourcePath     string `json:"source_path"`
	NamePath       string `json:"name_path"`
	Name           string `json:"name"`
	FieldName      string `json:"field_name"`
	NameFieldValue string `json:"name_field_value"`
	Seq            int    `json:"seq"`
}

// Artifact is the intermediate product: the filter that selected the items,
// their count, and the items in document pre-order with contiguous
// zero-based sequence numbers.
type Artifact struct {
	Stage  string `json:"stage"`
	Filter string `json:"filter"`
	Count  int    `json:"count"`
	Items  []Item `json:"items"`
}

// Build runs the derivation pipeline over the current index and document
// and returns the intermediate product as pretty-printed text. An empty
// filter short-circuits to an empty string without running the pipeline.
//
// Selection: with leafOnly set, a node qualifies when it is visible, its
// name contains the filter, and its kind is scalar; otherwise when it is
// visible and its address or name contains the filter. Every distinct
// address (each node's own plus its derived sibling-name address) is
// resolved exactly once.
func Build(doc any, nodes []shadow.Node, filter string, leafOnly bool, progress ProgressFunc) (string, error) {
	if strings.TrimSpace(filter) == "" {
		return "", nil
	}
	report := func(f float64, phase string) {
		if progress != nil {
			progress(f, phase)
		}
	}

	report(0.1, "selecting matching nodes")
	var matched []*shadow.Node
	for i := range nodes {
		n := &nodes[i]
		var ok bool
		if leafOnly {
			ok = n.Visible && strings.Contains(n.Name, filter) && n.Kind.IsScalar()
		} else {
			ok = n.Visible && (strings.Contains(n.Address, filter) || strings.Contains(n.Name, filter))
		}
		if ok {
			matched = append(matched, n)
		}
	}

	report(0.5, fmt.Sprintf("resolving %d matched nodes", len(matched)))
	want := make(map[string]struct{}, 2*len(matched))
	for _, n := range matched {
		want[n.Address] = struct{}{}
		if n.Name != "name" {
			if np, ok := address.DeriveName(n.Address); ok {
				want[np] = struct{}{}
			}
		}
	}
	resolved, err := address.ResolveSet(doc, want)
	if err != nil {
		return "", err
	}

	report(0.9, "assembling items")
	items := make([]Item, 0, len(matched))
	for _, n := range matched {
		cur := resolved[n.Address]

		namePath := n.Address
		nameRes := cur
		if n.Name != "name" {
			if np, ok := address.DeriveName(n.Address); ok {
				namePath = np
				nameRes = resolved[np]
			} else {
				nameRes = address.Resolution{}
			}
		}

		items = append(items, Item{
			SourcePath:     n.Address,
			NamePath:       namePath,
			Name:           valueText(cur),
			FieldName:      n.Name,
			NameFieldValue: valueText(nameRes),
			Seq:            len(items),
		})
	}

	art := Artifact{Stage: Stage, Filter: filter, Count: len(items), Items: items}
	report(1.0, "done")
	out, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// valueText renders a resolved value for artifact fields: strings verbatim,
// everything else as compact JSON, unresolved addresses as "".
func valueText(r address.Resolution) string {
	if !r.Found {
		return ""
	}
	if s, ok := r.Value.(string); ok {
		return s
	}
	b, err := json.Marshal(r.Value)
	if err != nil {
		return fmt.Sprintf("%v", r.Value)
	}
	return string(b)
}
