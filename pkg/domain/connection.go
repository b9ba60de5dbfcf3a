package domain

// LinkKindMain is the connection kind for the primary data flow. Other
// kinds exist in the wild (AI tool attachment ports, for example) and are
// preserved verbatim when a candidate graph carries them.
const LinkKindMain = "main"

// Link is one directed edge endpoint: the target node by display name and
// the input index it attaches to.
type Link struct {
	Node  string `json:"node" yaml:"node"`
	Type  string `json:"type" yaml:"type"`
	Index int    `json:"index" yaml:"index"`
}

// PortMap groups the outgoing links of a single node by connection kind.
// The outer slice index is the output port; each port holds an ordered
// list of links.
type PortMap map[string][][]Link

// ConnectionMap holds every directed edge of a workflow, keyed by the
// source node's display name.
type ConnectionMap map[string]PortMap

// Connect appends a main-kind edge from output port 0 of `from` to input 0
// of `to`.
func (c ConnectionMap) Connect(from, to string) {
	c.ConnectPort(from, to, 0)
}

// ConnectPort appends a main-kind edge from the given output port of
// `from` to input 0 of `to`, growing the port slice as needed.
func (c ConnectionMap) ConnectPort(from, to string, port int) {
	pm := c[from]
	if pm == nil {
		pm = PortMap{}
		c[from] = pm
	}
	outs := pm[LinkKindMain]
	for len(outs) <= port {
		outs = append(outs, []Link{})
	}
	outs[port] = append(outs[port], Link{Node: to, Type: LinkKindMain, Index: 0})
	pm[LinkKindMain] = outs
}

// Merge folds the edges of src into c. Ports that exist on both sides are
// concatenated in order; ports present only in src are appended.
func (c ConnectionMap) Merge(src ConnectionMap) {
	for name, srcPM := range src {
		pm := c[name]
		if pm == nil {
			c[name] = srcPM
			continue
		}
		for kind, srcOuts := range srcPM {
			outs := pm[kind]
			for i, links := range srcOuts {
				if i >= len(outs) {
					outs = append(outs, links)
					continue
				}
				outs[i] = append(outs[i], links...)
			}
			pm[kind] = outs
		}
	}
}

// Targets returns the set of node names that have at least one incoming
// link of any kind.
func (c ConnectionMap) Targets() map[string]bool {
	targets := make(map[string]bool)
	for _, pm := range c {
		for _, outs := range pm {
			for _, links := range outs {
				for _, l := range links {
					targets[l.Node] = true
				}
			}
		}
	}
	return targets
}
