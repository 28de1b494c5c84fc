// Package hostsim is an in-memory stand-in for the host game: scene trees,
// UI components, map and domain services with the same runtime shapes the
// real bootstrap would register. The engine only ever touches it through
// hostapi interfaces and the reflection layer, so everything that works
// against the sim works against the game.
package hostsim

import "github.com/appengine-ltd/storm-access/internal/hostapi"

// Node is a scene-graph node. It deliberately mirrors the ownership rules
// of the real host: the engine borrows nodes, the sim owns them.
type Node struct {
	name     string
	active   bool
	parent   *Node
	children []*Node
	comps    []any
}

func NewNode(name string, comps ...any) *Node {
	return &Node{name: name, active: true, comps: comps}
}

func (n *Node) Name() string { return n.name }
func (n *Node) Active() bool { return n != nil && n.active }

func (n *Node) Parent() hostapi.Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []hostapi.Node {
	if n == nil {
		return nil
	}
	out := make([]hostapi.Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

func (n *Node) Components() []any {
	if n == nil {
		return nil
	}
	return n.comps
}

// Add attaches children and returns n for chained tree building.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// SetActive flips the node's own active flag, as the host does when a tab
// or panel is shown or hidden.
func (n *Node) SetActive(active bool) {
	if n != nil {
		n.active = active
	}
}

// Attach appends a component after construction.
func (n *Node) Attach(comp any) *Node {
	if comp != nil {
		n.comps = append(n.comps, comp)
	}
	return n
}
