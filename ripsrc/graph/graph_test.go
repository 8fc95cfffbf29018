package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s ...string) []string {
	return s
}

func TestLastCommonParents1(t *testing.T) {
	g := New()
	g.Add("c1")
	g.Add("c2", "c1")
	g.Add("c3", "c1")
	res, err := g.LastCommonParent(str("c2", "c3"))
	require.NoError(t, err)
	assert.Equal(t, "c1", res)
}

func TestLastCommonParents2(t *testing.T) {
	g := New()
	g.Add("c1")
	g.Add("c2", "c1")
	g.Add("c3", "c2")
	g.Add("c4", "c3")
	g.Add("c5", "c4")
	g.Add("c6", "c4")
	g.Add("c7", "c6")
	g.Add("c8", "c6")
	res, err := g.LastCommonParent(str("c5", "c8"))
	require.NoError(t, err)
	assert.Equal(t, "c4", res)
}

func TestLastCommonParentsNone(t *testing.T) {
	g := New()
	g.Add("a")
	g.Add("b")
	_, err := g.LastCommonParent(str("a", "b"))
	assert.Error(t, err)
}

func TestChildren(t *testing.T) {
	g := New()
	g.Add("c1")
	g.Add("c3", "c1")
	g.Add("c2", "c1")
	assert.Equal(t, str("c2", "c3"), g.Children["c1"])
	assert.Nil(t, g.Children["c2"])
}

func TestGenerationsMerge(t *testing.T) {
	g := New()
	// children can be added before parents
	g.Add("m", "b2", "a1")
	g.Add("a1", "r")
	g.Add("b1", "r")
	g.Add("b2", "b1")
	g.Add("r")
	gens, err := g.Generations()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"r": 1, "a1": 2, "b1": 2, "b2": 3, "m": 4}, gens)
	assert.Empty(t, g.NonMonotonic(gens))
}

func TestGenerationsMissingParent(t *testing.T) {
	g := New()
	g.Add("c2", "c1")
	_, err := g.Generations()
	assert.Error(t, err)
}

func TestGenerationsCycle(t *testing.T) {
	g := New()
	g.Add("a", "b")
	g.Add("b", "a")
	_, err := g.Generations()
	assert.Error(t, err)
}

func TestNonMonotonic(t *testing.T) {
	g := New()
	g.Add("c1")
	g.Add("c2", "c1")
	g.Add("c3", "c2")
	keys := map[string]int64{"c1": 100, "c2": 50, "c3": 200}
	assert.Equal(t, []Edge{{Child: "c2", Parent: "c1"}}, g.NonMonotonic(keys))
}
