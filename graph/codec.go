package graph

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/sysmlstudio/vocabulary/sysml"
)

// FieldDiagnostic records a single non-fatal decode failure. The field is
// dropped from the decoded spec; everything else still decodes. Callers decide
// whether to log or surface the diagnostics — one corrupt field must never
// make a whole element unreadable.
type FieldDiagnostic struct {
	Field string
	Err   error
}

func (d FieldDiagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Field, d.Err)
}

// EncodeElement flattens an element spec into a storage property map.
// Mandatory id/name are always written; optional scalars are written only
// when non-empty; structured fields become JSON text. A nil property value is
// the explicit-clear marker — the graph store removes the property when a
// merge assigns nil.
func EncodeElement(spec ElementSpec) map[string]any {
	props := map[string]any{
		"id":   spec.ID,
		"name": spec.Name,
	}

	for _, f := range scalarFields {
		if v := f.get(&spec); v != "" {
			props[f.key] = v
		}
	}

	for _, f := range arrayFields {
		v := f.get(&spec)
		if v == nil {
			continue
		}
		if text, err := marshalJSONText(v); err == nil {
			props[f.key] = text
		}
	}

	// internalTransitions keeps its three-way distinction: absent fields are
	// omitted, an explicitly empty list clears the stored value, a non-empty
	// list replaces it.
	if spec.InternalTransitions != nil {
		if len(spec.InternalTransitions) == 0 {
			props["internalTransitions"] = nil
		} else if text, err := marshalJSONText(spec.InternalTransitions); err == nil {
			props["internalTransitions"] = text
		}
	}

	for _, f := range actionFields {
		v := f.get(&spec)
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if val == "" {
				props[f.key] = nil
			} else {
				props[f.key] = val
			}
		case bool:
			if !val {
				props[f.key] = nil
			} else {
				props[f.key] = val
			}
		case map[string]any, []any:
			if text, err := marshalJSONText(val); err == nil {
				props[f.key] = text
			}
		default:
			// Remaining JSON scalars (numbers) pass through unchanged.
			props[f.key] = val
		}
	}

	if spec.Positions != nil {
		if text, err := marshalJSONText(spec.Positions); err == nil {
			props[layoutPositionsKey] = text
		}
	}

	return props
}

// DecodeElement reconstructs an element spec from a storage property map.
// Decoding is per-field and never fails as a whole: a property holding
// corrupt JSON is skipped and reported in the returned diagnostics while all
// remaining fields decode normally.
func DecodeElement(props map[string]any) (ElementSpec, []FieldDiagnostic) {
	var spec ElementSpec
	var diags []FieldDiagnostic

	if v, ok := props["id"].(string); ok {
		spec.ID = v
	}
	if v, ok := props["name"].(string); ok {
		spec.Name = v
	}

	for _, f := range scalarFields {
		if v, ok := props[f.key].(string); ok {
			f.set(&spec, v)
		}
	}

	for _, f := range arrayFields {
		out, diag := decodeJSONArray(f.key, props[f.key])
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}
		if out != nil {
			f.set(&spec, out)
		}
	}

	if out, diag := decodeJSONArray("internalTransitions", props["internalTransitions"]); diag != nil {
		diags = append(diags, *diag)
	} else if out != nil {
		spec.InternalTransitions = out
	}

	for _, f := range actionFields {
		raw, ok := props[f.key]
		if !ok || raw == nil {
			continue
		}
		text, isString := raw.(string)
		if !isString {
			f.set(&spec, raw)
			continue
		}
		var structured any
		if err := json.Unmarshal([]byte(text), &structured); err != nil {
			// Back-compatibility: legacy plain-text actions are stored as
			// bare strings and fail JSON decoding.
			f.set(&spec, text)
			continue
		}
		switch structured.(type) {
		case map[string]any, []any:
			f.set(&spec, structured)
		default:
			// Strings like "go" decode as JSON scalars ("true", "42") or
			// fail; either way the stored text is the action.
			f.set(&spec, text)
		}
	}

	if raw, ok := props[layoutPositionsKey]; ok && raw != nil {
		if text, isString := raw.(string); isString {
			var positions map[string]Position
			if err := json.Unmarshal([]byte(text), &positions); err != nil {
				diags = append(diags, FieldDiagnostic{Field: "positions", Err: err})
			} else {
				spec.Positions = positions
			}
		} else {
			diags = append(diags, FieldDiagnostic{Field: "positions", Err: fmt.Errorf("unexpected property type %T", raw)})
		}
	}

	return spec, diags
}

// EncodeRelationship flattens a relationship spec into edge properties.
// Type, source and target live on the edge itself (relationship type and
// endpoints), not in the property map.
func EncodeRelationship(spec RelationshipSpec) map[string]any {
	props := map[string]any{
		"id": spec.ID,
	}
	if spec.Label != "" {
		props["label"] = spec.Label
	}
	for k, v := range spec.Properties {
		switch k {
		case "id", "label":
			// Reserved keys win over extras.
		default:
			props[k] = v
		}
	}
	return props
}

// DecodeRelationship reconstructs a relationship spec from a graph edge: its
// relationship type, endpoint element ids, and property map.
func DecodeRelationship(relType, source, target string, props map[string]any) RelationshipSpec {
	spec := RelationshipSpec{
		Type:   sysml.RelTypeToEdgeKind(relType),
		Source: source,
		Target: target,
	}
	for k, v := range props {
		switch k {
		case "id":
			if id, ok := v.(string); ok {
				spec.ID = id
			}
		case "label":
			if label, ok := v.(string); ok {
				spec.Label = label
			}
		default:
			if spec.Properties == nil {
				spec.Properties = make(map[string]any)
			}
			spec.Properties[k] = v
		}
	}
	return spec
}

// marshalJSONText encodes v as a JSON string for storage in a scalar
// property. Values originate from decoded client JSON, so failures are not
// reachable in practice; when they do occur the field is simply omitted,
// matching the codec's availability-over-completeness policy.
func marshalJSONText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeJSONArray decodes one JSON-text array property. A nil stored value
// (cleared field) and an absent key both decode to nil with no diagnostic.
func decodeJSONArray(key string, raw any) ([]any, *FieldDiagnostic) {
	if raw == nil {
		return nil, nil
	}
	text, ok := raw.(string)
	if !ok {
		return nil, &FieldDiagnostic{Field: key, Err: fmt.Errorf("unexpected property type %T", raw)}
	}
	var out []any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, &FieldDiagnostic{Field: key, Err: err}
	}
	return out, nil
}
