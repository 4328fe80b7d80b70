package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHierarchy_TwoFrames(t *testing.T) {
	table := Table{
		"A": {Name: "A"},
		"B": {Name: "B", Ancestors: []string{"A"}},
	}

	h := BuildHierarchy(table)

	assert.Equal(t, []string{"A"}, h.Roots)
	assert.Equal(t, []string{"B"}, h.Children["A"])
	assert.Equal(t, []string{"A"}, h.Parents["B"])
	assert.NotContains(t, h.Roots, "B")
}

func TestBuildHierarchy_MultipleAncestors(t *testing.T) {
	table := Table{
		"Event":  {Name: "Event"},
		"Act":    {Name: "Act"},
		"Attack": {Name: "Attack", Ancestors: []string{"Event", "Act"}},
	}

	h := BuildHierarchy(table)

	assert.Equal(t, []string{"Act", "Event"}, h.Roots)
	assert.Equal(t, []string{"Attack"}, h.Children["Event"])
	assert.Equal(t, []string{"Attack"}, h.Children["Act"])
	assert.Equal(t, []string{"Act", "Event"}, h.Parents["Attack"])
}

func TestBuildHierarchy_DeduplicatesRepeatedAncestors(t *testing.T) {
	table := Table{
		"A": {Name: "A"},
		"B": {Name: "B", Ancestors: []string{"A", "A"}},
	}

	h := BuildHierarchy(table)
	assert.Equal(t, []string{"B"}, h.Children["A"])
	assert.Equal(t, []string{"A"}, h.Parents["B"])
}

func TestBuildHierarchy_DescendantsIgnored(t *testing.T) {
	// The descendant list claims an edge that no ancestor list backs up; the
	// index must not contain it.
	table := Table{
		"A": {Name: "A", Descendants: []string{"Ghost"}},
		"B": {Name: "B", Ancestors: []string{"A"}},
	}

	h := BuildHierarchy(table)
	assert.Equal(t, []string{"B"}, h.Children["A"])
	assert.NotContains(t, h.Parents, "Ghost")
}

func TestBuildHierarchy_DanglingAncestor(t *testing.T) {
	// An ancestor that is not itself declared as a frame still gets a
	// children entry; root detection only considers declared frames.
	table := Table{
		"B": {Name: "B", Ancestors: []string{"Missing"}},
	}

	h := BuildHierarchy(table)
	assert.Empty(t, h.Roots)
	assert.Equal(t, []string{"B"}, h.Children["Missing"])
}

func TestBuildHierarchy_CycleStillProducesIndex(t *testing.T) {
	table := Table{
		"X": {Name: "X", Ancestors: []string{"Y"}},
		"Y": {Name: "Y", Ancestors: []string{"X"}},
	}

	h := BuildHierarchy(table)

	// Neither frame qualifies as a root; edges are still indexed.
	assert.Empty(t, h.Roots)
	assert.Equal(t, []string{"X"}, h.Children["Y"])
	assert.Equal(t, []string{"Y"}, h.Children["X"])
}

func TestBuildHierarchy_Empty(t *testing.T) {
	h := BuildHierarchy(Table{})
	assert.Empty(t, h.Roots)
	assert.Empty(t, h.Children)
	assert.Empty(t, h.Parents)
}

func TestHierarchyIndex_IsRoot(t *testing.T) {
	table := Table{
		"A": {Name: "A"},
		"B": {Name: "B", Ancestors: []string{"A"}},
		"C": {Name: "C"},
	}

	h := BuildHierarchy(table)
	require.Equal(t, []string{"A", "C"}, h.Roots)
	assert.True(t, h.IsRoot("A"))
	assert.True(t, h.IsRoot("C"))
	assert.False(t, h.IsRoot("B"))
	assert.False(t, h.IsRoot("Z"))
}

func TestBuildHierarchy_Deterministic(t *testing.T) {
	table := Table{
		"A": {Name: "A"},
		"B": {Name: "B", Ancestors: []string{"A"}},
		"C": {Name: "C", Ancestors: []string{"A"}},
		"D": {Name: "D", Ancestors: []string{"B", "C"}},
	}

	first := BuildHierarchy(table)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildHierarchy(table))
	}
	assert.Equal(t, []string{"B", "C"}, first.Children["A"])
}
