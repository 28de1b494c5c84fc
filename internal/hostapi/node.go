// Package hostapi declares the narrow capability surface the engine needs
// from the host scene graph. The bootstrap adapts the real game to these
// interfaces; internal/hostsim implements them in-memory for the harness
// and tests. Nodes are borrowed, never owned: the host destroys and
// recreates them on every scene transition.
package hostapi

// Node is one object in the host's visual hierarchy.
type Node interface {
	Name() string
	Active() bool
	Parent() Node
	Children() []Node
	Components() []any
}

// Services hands out live host service instances by name. Instances are
// fetched fresh on every call; a nil result means the service is not
// available right now (scene mid-transition, feature not loaded).
type Services interface {
	Service(name string) any
}

// ActiveInHierarchy reports whether n and every ancestor is active.
func ActiveInHierarchy(n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !cur.Active() {
			return false
		}
	}
	return n != nil
}

// Descendants returns every node under root in depth-first order, root
// excluded. A nil root yields nil.
func Descendants(root Node) []Node {
	if root == nil {
		return nil
	}
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			out = append(out, child)
			walk(child)
		}
	}
	walk(root)
	return out
}

// SameNode compares two nodes by identity. Popup tracking relies on this
// rather than names, since the host reuses names freely.
func SameNode(a, b Node) bool {
	return a != nil && b != nil && a == b
}
