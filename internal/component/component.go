// Package component defines the opaque identifier the scheduler uses to
// name logical pieces of the shared model that tasks read from and write
// to. The scheduler never looks inside a Component; it only compares and
// hashes it.
package component

import (
	"fmt"
	"reflect"
)

// Component names a logical region of the shared model, e.g. "shapes
// graph" or "workspace". Any comparable Go value works; the zero value
// is a valid (if unhelpful) identifier.
type Component = any

// Validate reports whether c can be safely used as a map key. The
// scheduler rejects components it cannot hash rather than letting a
// later map operation panic.
func Validate(c Component) error {
	if c == nil {
		return nil
	}
	t := reflect.TypeOf(c)
	if !t.Comparable() {
		return fmt.Errorf("component %#v of type %s is not comparable", c, t)
	}
	return nil
}

// Intersects reports whether a and b share at least one element. Both
// slices are assumed to already contain validated components.
func Intersects(a, b []Component) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[Component]struct{}, len(a))
	for _, c := range a {
		set[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// Contains reports whether c appears in set.
func Contains(set []Component, c Component) bool {
	for _, existing := range set {
		if existing == c {
			return true
		}
	}
	return false
}

// Union returns the deduplicated concatenation of a and b, preserving
// the relative order of a's elements followed by b's new elements.
func Union(a, b []Component) []Component {
	out := make([]Component, 0, len(a)+len(b))
	seen := make(map[Component]struct{}, len(a)+len(b))
	for _, c := range a {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range b {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
