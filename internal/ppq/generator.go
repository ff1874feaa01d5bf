package ppq

// Generator is a restartable, deterministic sequence of priorities. It
// favors high priorities while still visiting the lowest known priority
// exactly once per cycle, guaranteeing liveness.
//
// State is the rolling window (min, max) of every priority observed via
// NotifyPriorityExists, plus a descending "current" pointer and an
// advancing "frontier" that together generate the sequence. Reifying
// the sequence as an object with this explicit state is simpler than
// any coroutine-based generator and makes the sequence trivially
// restartable whenever a new maximum priority appears.
type Generator struct {
	min, max         int
	current, frontier int
}

// NewGenerator returns a generator whose window starts at [0, 0].
func NewGenerator() *Generator {
	return &Generator{}
}

// NotifyPriorityExists widens the generator's window to include p. If p
// is a new maximum, the sequence restarts at p: current and frontier
// both reset to p, so the new highest priority is serviced immediately
// rather than waiting out the remainder of the old cycle.
func (g *Generator) NotifyPriorityExists(p int) {
	if p > g.max {
		g.max = p
		g.current = p
		g.frontier = p
	}
	if p < g.min {
		g.min = p
	}
}

// Next returns the next priority in the sequence. For a window
// [min, max], one full cycle emits priority i exactly i-min+1 times,
// for a cycle length of (max-min+1)(max-min+2)/2.
func (g *Generator) Next() int {
	ret := g.current
	if g.current > g.frontier {
		g.current--
	} else {
		if g.frontier > g.min {
			g.frontier--
		} else {
			g.frontier = g.max
		}
		g.current = g.max
	}
	return ret
}
