package widget

import "sync"

// Container is the results region. Every write replaces its whole content.
type Container struct {
	mu       sync.RWMutex
	nodes    []Node
	revision uint64
}

// NewContainer creates an empty container
func NewContainer() *Container {
	return &Container{}
}

// Replace clears the container and stores nodes in its place
func (c *Container) Replace(nodes ...Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = append([]Node(nil), nodes...)
	c.revision++
}

// Nodes returns a copy of the current nodes
func (c *Container) Nodes() []Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Node(nil), c.nodes...)
}

// Revision counts writes; it changes whenever the content is replaced
func (c *Container) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Results returns the result nodes only
func (c *Container) Results() []Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Node
	for _, n := range c.nodes {
		if n.Kind == NodeResult {
			out = append(out, n)
		}
	}
	return out
}

// State reports which of the mutually exclusive states the container is in.
// An empty container reports false.
func (c *Container) State() (NodeKind, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.nodes) == 0 {
		return 0, false
	}
	return c.nodes[0].Kind, true
}
