package shadow

import "strings"

// ToggleExpanded flips the expanded flag of the node at address (no-op for
// unknown addresses) and recomputes expansion-based visibility.
func ToggleExpanded(nodes []Node, address string) {
	for i := range nodes {
		if nodes[i].Address == address {
			nodes[i].Expanded = !nodes[i].Expanded
			break
		}
	}
	RecomputeVisibility(nodes)
}

// RecomputeVisibility derives every node's visibility from expansion state.
// The root is always visible; every other node is visible only when it is
// the immediate child of a visible, expanded node.
//
// Because the index is pre-order, a node's own visibility is settled before
// its descendants are scanned, so one forward pass propagates visibility
// through arbitrarily deep expanded chains.
func RecomputeVisibility(nodes []Node) {
	for i := range nodes {
		nodes[i].Visible = i == 0
	}
	for i := range nodes {
		if !nodes[i].Expanded || !nodes[i].Visible {
			continue
		}
		parentDepth := nodes[i].Depth
		for j := i + 1; j < len(nodes); j++ {
			if nodes[j].Depth == parentDepth+1 {
				nodes[j].Visible = true
			} else if nodes[j].Depth <= parentDepth {
				// Sibling or ancestor boundary: past this node's subtree.
				break
			}
		}
	}
}

// ApplyFilter sets each node's visibility from a case-sensitive substring
// match against its address or name. An empty filter makes every node
// visible. Filtering replaces expansion-based visibility rather than
// intersecting with it; callers restore it with RecomputeVisibility.
func ApplyFilter(nodes []Node, text string) {
	if strings.TrimSpace(text) == "" {
		for i := range nodes {
			nodes[i].Visible = true
		}
		return
	}
	for i := range nodes {
		nodes[i].Visible = strings.Contains(nodes[i].Address, text) ||
			strings.Contains(nodes[i].Name, text)
	}
}
