package viewpoint

import "slices"

// Viewpoint is one named concern with its relevant node and edge kinds.
// Kind lists are ordered; the client palette preserves catalog order.
type Viewpoint struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	NodeKinds   []string `json:"nodeKinds"`
	EdgeKinds   []string `json:"edgeKinds,omitempty"`
}

// catalog is the full fixed set of viewpoints. Never mutated after init.
var catalog = []Viewpoint{
	{
		ID:          "sysml.structure",
		Name:        "Structural Definitions",
		Description: "Reusable type declarations: parts, items, ports, interfaces and their packaging",
		NodeKinds: []string{
			"package",
			"part-definition",
			"item-definition",
			"port-definition",
			"interface-definition",
			"attribute-definition",
		},
		EdgeKinds: []string{"specialization", "dependency", "containment"},
	},
	{
		ID:          "sysml.usage",
		Name:        "Usage Structure",
		Description: "Instance-like occurrences of definitions and their connections",
		NodeKinds: []string{
			"part-usage",
			"item-usage",
			"port-usage",
			"attribute-usage",
			"connection-usage",
		},
		EdgeKinds: []string{"connection", "binding", "dependency", "containment"},
	},
	{
		ID:          "sysml.action",
		Name:        "Action & Control Flow",
		Description: "Behavioral decomposition with actions and control nodes",
		NodeKinds: []string{
			"action-definition",
			"action-usage",
			"decision-node",
			"merge-node",
			"fork-node",
			"join-node",
		},
		EdgeKinds: []string{"control-flow", "object-flow", "succession"},
	},
	{
		ID:          "sysml.interaction",
		Name:        "Interaction",
		Description: "Message exchange between occurrences over time",
		NodeKinds:   []string{"part-usage", "occurrence-usage"},
		EdgeKinds:   []string{"message", "succession"},
	},
	{
		ID:          "sysml.state",
		Name:        "State Machines",
		Description: "States, their actions and transitions",
		NodeKinds:   []string{"state-definition", "state-usage"},
		EdgeKinds:   []string{"transition"},
	},
	{
		ID:          "sysml.requirement",
		Name:        "Requirements",
		Description: "Requirement definitions and usages with traceability links",
		NodeKinds:   []string{"requirement-definition", "requirement-usage"},
		EdgeKinds:   []string{"satisfy", "refine", "verify", "dependency"},
	},
	{
		ID:          "sysml.use-case",
		Name:        "Use Cases",
		Description: "Use cases, their actors and inclusion/extension structure",
		NodeKinds:   []string{"use-case-definition", "use-case-usage", "actor"},
		EdgeKinds:   []string{"include", "extend", "dependency"},
	},
}

// All returns the full catalog in order. The result is a copy; callers
// cannot mutate the registry through it.
func All() []Viewpoint {
	out := make([]Viewpoint, len(catalog))
	for i, vp := range catalog {
		out[i] = cloneViewpoint(vp)
	}
	return out
}

// ByID looks up a viewpoint by id. The second return is false when the id is
// unknown; that is a normal condition, not an error.
func ByID(id string) (Viewpoint, bool) {
	for _, vp := range catalog {
		if vp.ID == id {
			return cloneViewpoint(vp), true
		}
	}
	return Viewpoint{}, false
}

// AvailableTypes returns the node and edge kinds relevant to the given
// viewpoint. Unknown ids yield empty, non-nil slices so callers can treat
// every id uniformly.
func AvailableTypes(id string) (nodeKinds, edgeKinds []string) {
	vp, ok := ByID(id)
	if !ok {
		return []string{}, []string{}
	}
	nodeKinds = vp.NodeKinds
	edgeKinds = vp.EdgeKinds
	if nodeKinds == nil {
		nodeKinds = []string{}
	}
	if edgeKinds == nil {
		edgeKinds = []string{}
	}
	return nodeKinds, edgeKinds
}

// IsNodeKind reports whether some viewpoint declares the given element kind.
// Services use this to reject unknown kinds before they reach the store.
func IsNodeKind(kind string) bool {
	for _, vp := range catalog {
		if slices.Contains(vp.NodeKinds, kind) {
			return true
		}
	}
	return false
}

// IsEdgeKind reports whether some viewpoint declares the given edge kind.
func IsEdgeKind(kind string) bool {
	for _, vp := range catalog {
		if slices.Contains(vp.EdgeKinds, kind) {
			return true
		}
	}
	return false
}

func cloneViewpoint(vp Viewpoint) Viewpoint {
	vp.NodeKinds = slices.Clone(vp.NodeKinds)
	vp.EdgeKinds = slices.Clone(vp.EdgeKinds)
	return vp
}
