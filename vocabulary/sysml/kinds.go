package sysml

import (
	"strings"
	"unicode"
)

// GenericLabel is the label carried by every element node in the graph,
// alongside the kind-specific label. Queries that span all element kinds
// match on this label.
const GenericLabel = "SysMLElement"

// Class is the definition/usage classification of an element kind.
type Class string

const (
	// ClassDefinition marks reusable type declarations (part-definition,
	// action-definition, ...).
	ClassDefinition Class = "definition"
	// ClassUsage marks instance-like occurrences (part-usage, state-usage, ...).
	ClassUsage Class = "usage"
	// ClassNone marks kinds that are neither, such as control nodes and
	// relationship kinds.
	ClassNone Class = ""
)

// KindToLabel converts a kebab-case element kind to the PascalCase node label
// used by the graph store: "part-definition" → "PartDefinition".
func KindToLabel(kind string) string {
	parts := strings.Split(kind, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}

// LabelToKind converts a PascalCase node label back to its kebab-case kind:
// "PartDefinition" → "part-definition". Inverse of KindToLabel for labels
// produced from well-formed kinds.
func LabelToKind(label string) string {
	var b strings.Builder
	b.Grow(len(label) + 4)
	for i, r := range label {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// EdgeKindToRelType converts a kebab-case edge kind to the relationship type
// used by the graph store: "control-flow" → "CONTROL_FLOW".
func EdgeKindToRelType(kind string) string {
	return strings.ToUpper(strings.ReplaceAll(kind, "-", "_"))
}

// RelTypeToEdgeKind converts a graph relationship type back to its kebab-case
// edge kind: "CONTROL_FLOW" → "control-flow". Inverse of EdgeKindToRelType.
func RelTypeToEdgeKind(relType string) string {
	return strings.ToLower(strings.ReplaceAll(relType, "_", "-"))
}

// NodeLabels returns the full label set for an element node: the generic
// label first, then the kind-specific label. Every element node carries
// exactly these two labels.
func NodeLabels(kind string) []string {
	return []string{GenericLabel, KindToLabel(kind)}
}

// Classify reports whether a kind is a definition, a usage, or neither.
// Classification is by suffix only and mutually exclusive.
func Classify(kind string) Class {
	switch {
	case strings.HasSuffix(kind, "-definition"):
		return ClassDefinition
	case strings.HasSuffix(kind, "-usage"):
		return ClassUsage
	default:
		return ClassNone
	}
}
