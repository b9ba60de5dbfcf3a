package domain

// DefaultTypeVersion is applied to nodes that arrive without a version.
const DefaultTypeVersion = 1

// Workflow is a named, directed graph of automation nodes. An inactive
// workflow is importable but dormant; this core always emits inactive
// graphs and leaves activation to the importing system.
type Workflow struct {
	Name        string         `json:"name" yaml:"name"`
	Nodes       []Node         `json:"nodes" yaml:"nodes"`
	Connections ConnectionMap  `json:"connections" yaml:"connections"`
	Active      bool           `json:"active" yaml:"active"`
	Settings    map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// DefaultSettings returns the settings bag every freshly built graph gets.
func DefaultSettings() map[string]any {
	return map[string]any{"executionOrder": "v1"}
}

// NodeByName returns a pointer into the node slice, or nil when no node
// carries that display name.
func (w *Workflow) NodeByName(name string) *Node {
	for i := range w.Nodes {
		if w.Nodes[i].Name == name {
			return &w.Nodes[i]
		}
	}
	return nil
}

// Annotations returns the number of documentation-only nodes in the graph.
func (w *Workflow) Annotations() int {
	count := 0
	for i := range w.Nodes {
		if w.Nodes[i].IsAnnotation() {
			count++
		}
	}
	return count
}

// HasType reports whether any node carries one of the given type tags.
func (w *Workflow) HasType(types ...string) bool {
	for i := range w.Nodes {
		for _, t := range types {
			if w.Nodes[i].Type == t {
				return true
			}
		}
	}
	return false
}
