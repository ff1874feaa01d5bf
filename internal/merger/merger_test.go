package merger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/shaclsched/internal/instruction"
	"github.com/vk/shaclsched/internal/task"
)

type stringTask struct {
	payload string
}

// fuseRewriter is interested in every task with a string payload (or,
// when onlyFor is set, only in the task whose payload equals it) and
// fuses any pair by concatenating their payloads, for exercising the
// merger in isolation from any particular domain payload.
type fuseRewriter struct{ onlyFor string }

func (r fuseRewriter) IsOfInterest(t task.Task) bool {
	s, ok := t.Payload.(string)
	return ok && (r.onlyFor == "" || s == r.onlyFor)
}

func (r fuseRewriter) MaybeRewrite(first, second task.Task) (task.Task, bool) {
	return task.Task{
		Payload:  first.Payload.(string) + "+" + second.Payload.(string),
		Reads:    append(append([]any{}, first.Reads...), second.Reads...),
		Writes:   append(append([]any{}, first.Writes...), second.Writes...),
		Priority: first.Priority,
	}, true
}

func TestMergeFusesRAWPair(t *testing.T) {
	a := instruction.NewArena()
	g := Adapt(a)
	m := New()
	m.Register(fuseRewriter{})

	w := a.New(task.Task{Payload: "w", Writes: []any{"c"}})
	m.IntroduceInstruction(g, w)
	r := a.New(task.Task{Payload: "r", Reads: []any{"c"}})
	a.AddEdge(w, r)
	m.IntroduceInstruction(g, r)

	merged, superseded, ok := m.Merge(g, w)
	require.True(t, ok)
	require.ElementsMatch(t, []instruction.Handle{w, r}, superseded)

	require.False(t, a.Exists(w))
	require.False(t, a.Exists(r))

	mt, exists := a.Task(merged)
	require.True(t, exists)
	require.Equal(t, "w+r", mt.Payload)
	require.True(t, a.Eligible(merged))
}

func TestMergeRefusedWhenThirdInstructionBlocks(t *testing.T) {
	// first writes c, second reads c (candidate pair). k also depends
	// from first (reads c) and second writes d which k also reads:
	// R(k) ∩ W(second) != ∅ blocks the merge per canMergeRAW (a).
	a := instruction.NewArena()
	g := Adapt(a)
	m := New()
	m.Register(fuseRewriter{})

	first := a.New(task.Task{Payload: "first", Writes: []any{"c"}})
	m.IntroduceInstruction(g, first)

	k := a.New(task.Task{Payload: "k", Reads: []any{"c", "d"}})
	a.AddEdge(first, k)
	m.IntroduceInstruction(g, k)

	second := a.New(task.Task{Payload: "second", Reads: []any{"c"}, Writes: []any{"d"}})
	a.AddEdge(first, second)
	m.IntroduceInstruction(g, second)

	_, _, ok := m.Merge(g, first)
	require.False(t, ok, "merge must be refused when a third instruction reads what the candidate writes")
}

func TestMergeRefusedWhenCycleWouldForm(t *testing.T) {
	// k depends on first, and second already depends on k (K ∈ D(second)).
	// Merging first and second would make second both ancestor (via k)
	// and descendant (via the direct edge) of itself. k is kept out of the
	// rewriter's interest set so that (first, second) is the only candidate
	// pair; (first, k) would itself pass canMergeRAW.
	a := instruction.NewArena()
	g := Adapt(a)
	m := New()
	m.Register(fuseRewriter{})

	first := a.New(task.Task{Payload: "first", Writes: []any{"c"}})
	m.IntroduceInstruction(g, first)

	k := a.New(task.Task{Payload: "k", Reads: []any{"c"}})
	a.AddEdge(first, k)

	second := a.New(task.Task{Payload: "second", Reads: []any{"c"}})
	a.AddEdge(first, second)
	a.AddEdge(k, second)
	m.IntroduceInstruction(g, second)

	_, _, ok := m.Merge(g, first)
	require.False(t, ok)
}

func TestCompleteInstructionRemovesFromAllInterestSets(t *testing.T) {
	a := instruction.NewArena()
	g := Adapt(a)
	m := New()
	m.Register(fuseRewriter{})
	m.Register(fuseRewriter{})

	h := a.New(task.Task{Payload: "x"})
	m.IntroduceInstruction(g, h)
	require.Contains(t, m.interest[0], h)
	require.Contains(t, m.interest[1], h)

	m.CompleteInstruction(h)
	require.NotContains(t, m.interest[0], h)
	require.NotContains(t, m.interest[1], h)
}

func TestMergeOnlyConsidersInterestedRewriters(t *testing.T) {
	a := instruction.NewArena()
	g := Adapt(a)
	m := New()
	m.Register(fuseRewriter{onlyFor: "nobody"})

	w := a.New(task.Task{Payload: "w", Writes: []any{"c"}})
	m.IntroduceInstruction(g, w)
	r := a.New(task.Task{Payload: "r", Reads: []any{"c"}})
	a.AddEdge(w, r)
	m.IntroduceInstruction(g, r)

	_, _, ok := m.Merge(g, w)
	require.False(t, ok)
}
