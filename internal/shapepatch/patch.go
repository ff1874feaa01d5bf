// Package shapepatch is an example task payload standing in for the
// editor's real RDF shape/data graph patches. It is opaque to the
// scheduler: nothing in internal/scheduler, internal/merger,
// internal/ppq, or internal/instruction imports this package. It
// exists so internal/rewriters.CombinableRewriter has a concrete,
// testable payload to fuse.
package shapepatch

import "fmt"

// Patch describes setting a single property value on a named node in a
// shapes or data graph, the kind of edit the visual SHACL editor
// issues on every form field change.
type Patch struct {
	Node     string
	Property string
	Value    any
}

// CombinesWith implements rewriters.Combiner: two patches to the same
// node and property can always be collapsed into one (the later value
// wins), matching what executing them in sequence would observe.
func (p Patch) CombinesWith(other any) bool {
	o, ok := other.(Patch)
	if !ok {
		return false
	}
	return p.Node == o.Node && p.Property == o.Property
}

// CombineWith implements rewriters.Combiner.
func (p Patch) CombineWith(other any) any {
	o := other.(Patch)
	return Patch{Node: p.Node, Property: p.Property, Value: o.Value}
}

func (p Patch) String() string {
	return fmt.Sprintf("set %s.%s = %v", p.Node, p.Property, p.Value)
}
