package instruction

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/shaclsched/internal/task"
)

func TestArenaAddEdgeMaintainsMirror(t *testing.T) {
	a := NewArena()
	writer := a.New(task.Task{Priority: 0})
	reader := a.New(task.Task{Priority: 1})

	require.True(t, a.Eligible(writer))
	require.True(t, a.Eligible(reader))

	a.AddEdge(writer, reader)

	require.False(t, a.Eligible(reader))
	require.ElementsMatch(t, []Handle{writer}, a.DependenciesOf(reader))
	require.ElementsMatch(t, []Handle{reader}, a.DependentsOf(writer))
}

func TestArenaRemoveDependencyMakesEligible(t *testing.T) {
	a := NewArena()
	writer := a.New(task.Task{})
	reader := a.New(task.Task{})
	a.AddEdge(writer, reader)

	a.RemoveDependency(reader, writer)

	require.True(t, a.Eligible(reader))
	require.Empty(t, a.DependentsOf(writer))
}

func TestArenaRemoveMakesHandleStale(t *testing.T) {
	a := NewArena()
	h := a.New(task.Task{})
	require.True(t, a.Exists(h))

	a.Remove(h)

	require.False(t, a.Exists(h))
	_, ok := a.Task(h)
	require.False(t, ok)
}

func TestArenaSupersedeUnionsAncestorsAndRedirectsDescendants(t *testing.T) {
	a := NewArena()
	ancestorOfFirst := a.New(task.Task{Priority: 0})
	ancestorOfSecond := a.New(task.Task{Priority: 0})
	first := a.New(task.Task{Priority: 1})
	second := a.New(task.Task{Priority: 2})
	descendant := a.New(task.Task{Priority: 3})

	a.AddEdge(ancestorOfFirst, first)
	a.AddEdge(ancestorOfSecond, second)
	a.AddEdge(first, second) // the RAW edge being merged away
	a.AddEdge(second, descendant)

	replacement := a.New(task.Task{Priority: 2})
	a.Supersede([]Handle{first, second}, replacement)

	require.False(t, a.Exists(first))
	require.False(t, a.Exists(second))

	require.ElementsMatch(t, []Handle{ancestorOfFirst, ancestorOfSecond}, a.DependenciesOf(replacement))
	require.ElementsMatch(t, []Handle{descendant}, a.DependentsOf(replacement))
	require.ElementsMatch(t, []Handle{replacement}, a.DependenciesOf(descendant))
	require.ElementsMatch(t, []Handle{replacement}, a.DependentsOf(ancestorOfFirst))
	require.ElementsMatch(t, []Handle{replacement}, a.DependentsOf(ancestorOfSecond))

	require.False(t, a.Eligible(replacement))
}

func TestArenaLenTracksLiveInstructions(t *testing.T) {
	a := NewArena()
	require.Equal(t, 0, a.Len())

	h1 := a.New(task.Task{})
	require.Equal(t, 1, a.Len())
	a.New(task.Task{})
	require.Equal(t, 2, a.Len())

	a.Remove(h1)
	require.Equal(t, 1, a.Len())
}

func TestArenaSupersedeDropsInternalEdges(t *testing.T) {
	a := NewArena()
	first := a.New(task.Task{})
	second := a.New(task.Task{})
	a.AddEdge(first, second)

	replacement := a.New(task.Task{})
	a.Supersede([]Handle{first, second}, replacement)

	require.Empty(t, a.DependenciesOf(replacement))
	require.Empty(t, a.DependentsOf(replacement))
	require.True(t, a.Eligible(replacement))
}
