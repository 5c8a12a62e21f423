package sysml

import "github.com/c360studio/semstreams/vocabulary"

// Element predicates describe the properties stored on element nodes.
// Scalar-valued properties are stored as-is; array-valued properties are
// stored as JSON text because the graph store has no nested value type.
const (
	// ElementName is the human-readable element name.
	ElementName = "sysml.element.name"

	// ElementKind is the kebab-case kind string (part-definition, action-usage).
	ElementKind = "sysml.element.kind"

	// ElementStereotype is the optional stereotype annotation.
	ElementStereotype = "sysml.element.stereotype"

	// ElementStatus is the lifecycle status of the element.
	// Values are client-defined; the backend does not interpret them.
	ElementStatus = "sysml.element.status"

	// ElementDescription is the short description text.
	ElementDescription = "sysml.element.description"

	// ElementDocumentation is the long-form documentation body.
	ElementDocumentation = "sysml.element.documentation"

	// ElementAttributes is the JSON-encoded attribute list.
	ElementAttributes = "sysml.element.attributes"

	// ElementPorts is the JSON-encoded port list.
	ElementPorts = "sysml.element.ports"

	// ElementLayout is the JSON-encoded per-viewpoint layout position map.
	ElementLayout = "sysml.element.layout"
)

// Relationship predicates describe typed edges between elements.
const (
	// RelationshipType is the kebab-case edge kind (satisfy, control-flow).
	RelationshipType = "sysml.relationship.type"

	// RelationshipSource is the id of the source element.
	RelationshipSource = "sysml.relationship.source"

	// RelationshipTarget is the id of the target element.
	RelationshipTarget = "sysml.relationship.target"

	// RelationshipLabel is the optional display label on the edge.
	RelationshipLabel = "sysml.relationship.label"
)

// Namespace is the IRI namespace for SysML Studio terms.
const Namespace = "https://sysmlstudio.dev/ontology/sysml/"

func init() {
	vocabulary.Register(ElementName,
		vocabulary.WithDescription("Human-readable element name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"name"))

	vocabulary.Register(ElementKind,
		vocabulary.WithDescription("Kebab-case element kind"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"kind"))

	vocabulary.Register(ElementStereotype,
		vocabulary.WithDescription("Optional stereotype annotation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"stereotype"))

	vocabulary.Register(ElementStatus,
		vocabulary.WithDescription("Client-defined lifecycle status"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"status"))

	vocabulary.Register(ElementDescription,
		vocabulary.WithDescription("Short description text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"description"))

	vocabulary.Register(ElementDocumentation,
		vocabulary.WithDescription("Long-form documentation body"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"documentation"))

	vocabulary.Register(ElementAttributes,
		vocabulary.WithDescription("JSON-encoded attribute list"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"attributes"))

	vocabulary.Register(ElementPorts,
		vocabulary.WithDescription("JSON-encoded port list"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"ports"))

	vocabulary.Register(ElementLayout,
		vocabulary.WithDescription("Per-viewpoint layout position map"),
		vocabulary.WithDataType("object"),
		vocabulary.WithIRI(Namespace+"layout"))

	vocabulary.Register(RelationshipType,
		vocabulary.WithDescription("Kebab-case relationship kind"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"relationshipType"))

	vocabulary.Register(RelationshipSource,
		vocabulary.WithDescription("Source element id"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"source"))

	vocabulary.Register(RelationshipTarget,
		vocabulary.WithDescription("Target element id"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"target"))

	vocabulary.Register(RelationshipLabel,
		vocabulary.WithDescription("Optional display label on the edge"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"label"))
}
