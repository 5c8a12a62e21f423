package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sysmlstudio/graph"
)

func TestEncodeElementMandatoryFields(t *testing.T) {
	props := graph.EncodeElement(graph.ElementSpec{ID: "e1", Name: "Vehicle"})

	assert.Equal(t, "e1", props["id"])
	assert.Equal(t, "Vehicle", props["name"])
	// Absent optional fields are omitted, not written as empty strings.
	assert.NotContains(t, props, "stereotype")
	assert.NotContains(t, props, "attributes")
	assert.NotContains(t, props, "internalTransitions")
	assert.NotContains(t, props, "entryAction")
	assert.NotContains(t, props, "layoutPositions")
}

func TestEncodeElementScalars(t *testing.T) {
	spec := graph.ElementSpec{
		ID:         "e1",
		Name:       "Brake",
		Stereotype: "block",
		Status:     "draft",
		Guard:      "speed > 0",
	}

	props := graph.EncodeElement(spec)

	assert.Equal(t, "block", props["stereotype"])
	assert.Equal(t, "draft", props["status"])
	assert.Equal(t, "speed > 0", props["guard"])
	assert.NotContains(t, props, "description")
}

func TestEncodeElementArraysAsJSONText(t *testing.T) {
	spec := graph.ElementSpec{
		ID:         "e1",
		Name:       "Vehicle",
		Attributes: []any{map[string]any{"name": "mass", "type": "kg"}},
		Ports:      []any{map[string]any{"name": "fuelIn"}},
	}

	props := graph.EncodeElement(spec)

	assert.JSONEq(t, `[{"name":"mass","type":"kg"}]`, props["attributes"].(string))
	assert.JSONEq(t, `[{"name":"fuelIn"}]`, props["ports"].(string))
}

func TestInternalTransitionsTriState(t *testing.T) {
	t.Run("undefined is omitted", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{ID: "e1", Name: "On"})
		_, present := props["internalTransitions"]
		assert.False(t, present)
	})

	t.Run("empty clears via nil marker", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On", InternalTransitions: []any{},
		})
		v, present := props["internalTransitions"]
		require.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("non-empty encodes JSON text", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On",
			InternalTransitions: []any{map[string]any{"trigger": "tick"}},
		})
		assert.JSONEq(t, `[{"trigger":"tick"}]`, props["internalTransitions"].(string))
	})
}

func TestActionReferenceEncoding(t *testing.T) {
	t.Run("structured object encodes JSON text", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On",
			EntryAction: map[string]any{"ref": "a1", "name": "startPump"},
		})
		assert.JSONEq(t, `{"ref":"a1","name":"startPump"}`, props["entryAction"].(string))
	})

	t.Run("reference list encodes JSON text", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On",
			DoActivity: []any{map[string]any{"ref": "a1"}, map[string]any{"ref": "a2"}},
		})
		assert.JSONEq(t, `[{"ref":"a1"},{"ref":"a2"}]`, props["doActivity"].(string))
	})

	t.Run("reference list round-trips", func(t *testing.T) {
		spec := graph.ElementSpec{
			ID: "e1", Name: "On",
			EntryAction: []any{map[string]any{"ref": "a1"}},
		}
		decoded, diags := graph.DecodeElement(graph.EncodeElement(spec))
		require.Empty(t, diags)
		assert.Equal(t, spec.EntryAction, decoded.EntryAction)
	})

	t.Run("plain string stored as-is", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On", DoActivity: "monitor temperature",
		})
		assert.Equal(t, "monitor temperature", props["doActivity"])
	})

	t.Run("empty string is an explicit clear", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{
			ID: "e1", Name: "On", ExitAction: "",
		})
		v, present := props["exitAction"]
		require.True(t, present)
		assert.Nil(t, v)
	})

	t.Run("undefined is omitted", func(t *testing.T) {
		props := graph.EncodeElement(graph.ElementSpec{ID: "e1", Name: "On"})
		_, present := props["entryAction"]
		assert.False(t, present)
	})
}

func TestElementRoundTrip(t *testing.T) {
	spec := graph.ElementSpec{
		ID:            "e42",
		Name:          "EngineControl",
		Stereotype:    "state",
		Description:   "main control state",
		Documentation: "Long form docs.",
		Attributes:    []any{map[string]any{"name": "a"}},
		Parameters:    []any{map[string]any{"name": "p", "direction": "in"}},
		InternalTransitions: []any{
			map[string]any{"trigger": "overTemp", "effect": "shutdown"},
		},
		EntryAction: map[string]any{"ref": "act-1"},
		DoActivity:  "poll sensors",
		Positions: map[string]graph.Position{
			"sysml.state": {X: 120, Y: 80},
		},
	}

	decoded, diags := graph.DecodeElement(graph.EncodeElement(spec))

	require.Empty(t, diags)
	assert.Equal(t, spec.ID, decoded.ID)
	assert.Equal(t, spec.Name, decoded.Name)
	assert.Equal(t, spec.Stereotype, decoded.Stereotype)
	assert.Equal(t, spec.Description, decoded.Description)
	assert.Equal(t, spec.Documentation, decoded.Documentation)
	assert.Equal(t, []any{map[string]any{"name": "a"}}, decoded.Attributes)
	assert.Equal(t, spec.Parameters, decoded.Parameters)
	assert.Equal(t, spec.InternalTransitions, decoded.InternalTransitions)
	assert.Equal(t, map[string]any{"ref": "act-1"}, decoded.EntryAction)
	assert.Equal(t, "poll sensors", decoded.DoActivity)
	assert.Equal(t, spec.Positions, decoded.Positions)
}

func TestDecodeCorruptFieldIsSkippedNotFatal(t *testing.T) {
	props := map[string]any{
		"id":         "e1",
		"name":       "Vehicle",
		"status":     "approved",
		"ports":      `{not valid json`,
		"attributes": `[{"name":"mass"}]`,
	}

	decoded, diags := graph.DecodeElement(props)

	// The corrupt field is dropped and reported; everything else decodes.
	assert.Nil(t, decoded.Ports)
	require.Len(t, diags, 1)
	assert.Equal(t, "ports", diags[0].Field)

	assert.Equal(t, "e1", decoded.ID)
	assert.Equal(t, "approved", decoded.Status)
	assert.Equal(t, []any{map[string]any{"name": "mass"}}, decoded.Attributes)
}

func TestDecodeActionFallsBackToLiteralString(t *testing.T) {
	props := map[string]any{
		"id":          "e1",
		"name":        "On",
		"entryAction": "open intake valve",
		"exitAction":  `{"ref":"act-9"}`,
	}

	decoded, diags := graph.DecodeElement(props)

	assert.Empty(t, diags)
	assert.Equal(t, "open intake valve", decoded.EntryAction)
	assert.Equal(t, map[string]any{"ref": "act-9"}, decoded.ExitAction)
}

func TestDecodeClearedFieldsStayAbsent(t *testing.T) {
	props := map[string]any{
		"id":                  "e1",
		"name":                "On",
		"internalTransitions": nil,
		"entryAction":         nil,
	}

	decoded, diags := graph.DecodeElement(props)

	assert.Empty(t, diags)
	assert.Nil(t, decoded.InternalTransitions)
	assert.Nil(t, decoded.EntryAction)
}

func TestRelationshipRoundTrip(t *testing.T) {
	spec := graph.RelationshipSpec{
		ID:     "r1",
		Type:   "control-flow",
		Source: "e1",
		Target: "e2",
		Label:  "on failure",
		Properties: map[string]any{
			"guard": "retries < 3",
		},
	}

	props := graph.EncodeRelationship(spec)
	decoded := graph.DecodeRelationship("CONTROL_FLOW", "e1", "e2", props)

	assert.Equal(t, spec, decoded)
}

func TestEncodeRelationshipReservedKeys(t *testing.T) {
	props := graph.EncodeRelationship(graph.RelationshipSpec{
		ID:    "r1",
		Type:  "satisfy",
		Label: "label",
		Properties: map[string]any{
			"id":     "spoofed",
			"weight": 2,
		},
	})

	assert.Equal(t, "r1", props["id"])
	assert.Equal(t, "label", props["label"])
	assert.Equal(t, 2, props["weight"])
}
