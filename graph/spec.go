// Package graph provides the property codec between domain element specs and
// the flat property maps stored on graph nodes and relationships.
//
// The graph store has no nested value type, so structured fields (attribute
// lists, ports, layout positions) are stored as JSON text in scalar string
// properties. All (de)serialization is confined to this package: callers on
// either side never see raw JSON text. The codec is purely structural — it
// performs no domain validation; required-field checks and referential
// integrity belong to the services that call it.
package graph

// Position is a diagram coordinate for one element in one viewpoint.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementSpec is the domain representation of a model element. ID and Name
// are mandatory; everything else is optional and omitted from storage when
// absent, which is what makes partial updates non-clobbering.
type ElementSpec struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Optional textual scalars.
	Stereotype           string `json:"stereotype,omitempty"`
	Description          string `json:"description,omitempty"`
	Documentation        string `json:"documentation,omitempty"`
	Status               string `json:"status,omitempty"`
	Text                 string `json:"text,omitempty"`
	Definition           string `json:"definition,omitempty"`
	Interface            string `json:"interface,omitempty"`
	ObjectiveRequirement string `json:"objectiveRequirement,omitempty"`
	SubjectParameter     string `json:"subjectParameter,omitempty"`

	// Relationship-style scalars, used when a spec describes an edge
	// (state transitions carry trigger/guard/effect).
	Trigger   string `json:"trigger,omitempty"`
	Guard     string `json:"guard,omitempty"`
	Effect    string `json:"effect,omitempty"`
	Rationale string `json:"rationale,omitempty"`

	// Array-valued structured fields, stored as JSON text.
	Attributes       []any `json:"attributes,omitempty"`
	Ports            []any `json:"ports,omitempty"`
	Tags             []any `json:"tags,omitempty"`
	Parameters       []any `json:"parameters,omitempty"`
	Preconditions    []any `json:"preconditions,omitempty"`
	Postconditions   []any `json:"postconditions,omitempty"`
	LocalVariables   []any `json:"localVariables,omitempty"`
	Actors           []any `json:"actors,omitempty"`
	Includes         []any `json:"includes,omitempty"`
	IncludedUseCases []any `json:"includedUseCases,omitempty"`
	Extends          []any `json:"extends,omitempty"`

	// InternalTransitions is tri-state: nil leaves the stored value
	// untouched, an empty non-nil slice clears it, a non-empty slice
	// replaces it. The distinction survives encoding (omit / nil marker /
	// JSON text).
	InternalTransitions []any `json:"internalTransitions,omitempty"`

	// Action references accept either a structured reference object or a
	// legacy plain-text action string. An empty string (or false) is an
	// explicit clear.
	EntryAction any `json:"entryAction,omitempty"`
	ExitAction  any `json:"exitAction,omitempty"`
	DoActivity  any `json:"doActivity,omitempty"`

	// Positions maps viewpoint id to diagram position. Stored under the
	// layoutPositions property.
	Positions map[string]Position `json:"positions,omitempty"`
}

// RelationshipSpec is the domain representation of a typed edge between two
// elements. Type is the kebab-case edge kind.
type RelationshipSpec struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`

	// Properties carries extra scalar edge properties (guards, weights).
	Properties map[string]any `json:"properties,omitempty"`
}

// layoutPositionsKey is the storage property holding the JSON-encoded
// Positions map.
const layoutPositionsKey = "layoutPositions"

// scalarField describes one optional string field copied verbatim between
// spec and properties. Adding a scalar field to the model is one table entry.
type scalarField struct {
	key string
	get func(*ElementSpec) string
	set func(*ElementSpec, string)
}

var scalarFields = []scalarField{
	{"stereotype", func(s *ElementSpec) string { return s.Stereotype }, func(s *ElementSpec, v string) { s.Stereotype = v }},
	{"description", func(s *ElementSpec) string { return s.Description }, func(s *ElementSpec, v string) { s.Description = v }},
	{"documentation", func(s *ElementSpec) string { return s.Documentation }, func(s *ElementSpec, v string) { s.Documentation = v }},
	{"status", func(s *ElementSpec) string { return s.Status }, func(s *ElementSpec, v string) { s.Status = v }},
	{"text", func(s *ElementSpec) string { return s.Text }, func(s *ElementSpec, v string) { s.Text = v }},
	{"definition", func(s *ElementSpec) string { return s.Definition }, func(s *ElementSpec, v string) { s.Definition = v }},
	{"interface", func(s *ElementSpec) string { return s.Interface }, func(s *ElementSpec, v string) { s.Interface = v }},
	{"objectiveRequirement", func(s *ElementSpec) string { return s.ObjectiveRequirement }, func(s *ElementSpec, v string) { s.ObjectiveRequirement = v }},
	{"subjectParameter", func(s *ElementSpec) string { return s.SubjectParameter }, func(s *ElementSpec, v string) { s.SubjectParameter = v }},
	{"trigger", func(s *ElementSpec) string { return s.Trigger }, func(s *ElementSpec, v string) { s.Trigger = v }},
	{"guard", func(s *ElementSpec) string { return s.Guard }, func(s *ElementSpec, v string) { s.Guard = v }},
	{"effect", func(s *ElementSpec) string { return s.Effect }, func(s *ElementSpec, v string) { s.Effect = v }},
	{"rationale", func(s *ElementSpec) string { return s.Rationale }, func(s *ElementSpec, v string) { s.Rationale = v }},
}

// arrayField describes one JSON-text-encoded structured field.
type arrayField struct {
	key string
	get func(*ElementSpec) []any
	set func(*ElementSpec, []any)
}

var arrayFields = []arrayField{
	{"attributes", func(s *ElementSpec) []any { return s.Attributes }, func(s *ElementSpec, v []any) { s.Attributes = v }},
	{"ports", func(s *ElementSpec) []any { return s.Ports }, func(s *ElementSpec, v []any) { s.Ports = v }},
	{"tags", func(s *ElementSpec) []any { return s.Tags }, func(s *ElementSpec, v []any) { s.Tags = v }},
	{"parameters", func(s *ElementSpec) []any { return s.Parameters }, func(s *ElementSpec, v []any) { s.Parameters = v }},
	{"preconditions", func(s *ElementSpec) []any { return s.Preconditions }, func(s *ElementSpec, v []any) { s.Preconditions = v }},
	{"postconditions", func(s *ElementSpec) []any { return s.Postconditions }, func(s *ElementSpec, v []any) { s.Postconditions = v }},
	{"localVariables", func(s *ElementSpec) []any { return s.LocalVariables }, func(s *ElementSpec, v []any) { s.LocalVariables = v }},
	{"actors", func(s *ElementSpec) []any { return s.Actors }, func(s *ElementSpec, v []any) { s.Actors = v }},
	{"includes", func(s *ElementSpec) []any { return s.Includes }, func(s *ElementSpec, v []any) { s.Includes = v }},
	{"includedUseCases", func(s *ElementSpec) []any { return s.IncludedUseCases }, func(s *ElementSpec, v []any) { s.IncludedUseCases = v }},
	{"extends", func(s *ElementSpec) []any { return s.Extends }, func(s *ElementSpec, v []any) { s.Extends = v }},
}

// actionField describes one action-reference field (string or object valued).
type actionField struct {
	key string
	get func(*ElementSpec) any
	set func(*ElementSpec, any)
}

var actionFields = []actionField{
	{"entryAction", func(s *ElementSpec) any { return s.EntryAction }, func(s *ElementSpec, v any) { s.EntryAction = v }},
	{"exitAction", func(s *ElementSpec) any { return s.ExitAction }, func(s *ElementSpec, v any) { s.ExitAction = v }},
	{"doActivity", func(s *ElementSpec) any { return s.DoActivity }, func(s *ElementSpec, v any) { s.DoActivity = v }},
}
