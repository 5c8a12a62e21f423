// Package sysml provides the kind vocabulary for SysML v2-style model elements.
//
// The domain identifies element and relationship types by kebab-case "kind"
// strings (part-definition, action-usage, control-flow). The graph store uses
// its own naming conventions: PascalCase node labels and SCREAMING_SNAKE_CASE
// relationship types. This package owns the translation between the two, in
// both directions, plus the definition/usage classification derived from the
// kind suffix.
//
// All transforms are pure string functions. They assume well-formed input:
// a malformed kind produces a plausible but unchecked string rather than an
// error, so callers must restrict kinds to values known to the viewpoint
// registry before relying on round-trip correctness.
//
// Import this package to auto-register the element property predicates:
//
//	import _ "github.com/c360studio/sysmlstudio/vocabulary/sysml"
package sysml
