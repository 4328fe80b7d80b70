package ontology

import "sort"

// HierarchyIndex is the navigable parent/child view of the ontology.
// Roots are frames that declare no ancestors; Children[P] lists every frame
// that names P among its ancestors; Parents is the inverse.  All slices are
// deduplicated and sorted, so the index is deterministic for a given table.
type HierarchyIndex struct {
	Roots    []string            `json:"roots"`
	Children map[string][]string `json:"children"`
	Parents  map[string][]string `json:"parents"`
}

// IsRoot reports whether the frame declared no ancestors.
func (h HierarchyIndex) IsRoot(frame string) bool {
	i := sort.SearchStrings(h.Roots, frame)
	return i < len(h.Roots) && h.Roots[i] == frame
}

// BuildHierarchy derives the hierarchy index from the table's ancestor
// declarations.  Each frame's descendant list is redundant with the ancestor
// lists of other frames and is deliberately ignored here: folding both in
// would double-count edges whenever the two lists agree and silently invent
// edges whenever they do not.
//
// No cycle detection is performed.  A cyclic ontology still produces an
// index, but every frame on a cycle has ancestors and therefore appears in
// no root set, leaving its subgraph unreachable from Roots.
func BuildHierarchy(table Table) HierarchyIndex {
	roots := make(map[string]struct{})
	children := make(map[string]map[string]struct{})
	parents := make(map[string]map[string]struct{})

	for name, node := range table {
		if len(node.Ancestors) == 0 {
			roots[name] = struct{}{}
			continue
		}
		for _, ancestor := range node.Ancestors {
			addEdge(children, ancestor, name)
			addEdge(parents, name, ancestor)
		}
	}

	return HierarchyIndex{
		Roots:    sortedKeys(roots),
		Children: finalize(children),
		Parents:  finalize(parents),
	}
}

func addEdge(m map[string]map[string]struct{}, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func finalize(m map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		out[k] = sortedKeys(set)
	}
	return out
}
