package storage

import (
	"reflect"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360studio/sysmlstudio/graph"
)

func TestKindFromLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{
			name:   "generic plus kind label",
			labels: []string{"SysMLElement", "PartDefinition"},
			want:   "part-definition",
		},
		{
			name:   "kind label first",
			labels: []string{"ActionUsage", "SysMLElement"},
			want:   "action-usage",
		},
		{
			name:   "single-word kind",
			labels: []string{"SysMLElement", "Package"},
			want:   "package",
		},
		{
			name:   "generic label only",
			labels: []string{"SysMLElement"},
			want:   "",
		},
		{
			name:   "no labels",
			labels: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindFromLabels(tt.labels); got != tt.want {
				t.Errorf("kindFromLabels(%v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}

func TestNodeToElement(t *testing.T) {
	node := neo4j.Node{
		Labels: []string{"SysMLElement", "StateUsage"},
		Props: map[string]any{
			"id":     "st-1",
			"name":   "Armed",
			"status": "approved",
			"ports":  `[{"name":"in"}]`,
		},
	}

	el, diags := nodeToElement(node)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if el.Kind != "state-usage" {
		t.Errorf("Kind = %q, want %q", el.Kind, "state-usage")
	}
	if el.ID != "st-1" || el.Name != "Armed" || el.Status != "approved" {
		t.Errorf("unexpected spec fields: %+v", el.ElementSpec)
	}
	if len(el.Ports) != 1 {
		t.Errorf("Ports = %v, want one entry", el.Ports)
	}
}

func TestNodeToElementReportsBadFields(t *testing.T) {
	node := neo4j.Node{
		Labels: []string{"SysMLElement", "PartDefinition"},
		Props: map[string]any{
			"id":         "p-1",
			"name":       "Engine",
			"attributes": "{not json",
		},
	}

	el, diags := nodeToElement(node)
	if el.ID != "p-1" || el.Name != "Engine" {
		t.Fatalf("element should survive a bad field: %+v", el)
	}
	if len(diags) != 1 || diags[0].Field != "attributes" {
		t.Fatalf("diags = %v, want one for attributes", diags)
	}
}

func TestUpdateProps(t *testing.T) {
	t.Run("id is always stripped", func(t *testing.T) {
		props := updateProps(graph.ElementSpec{ID: "e-1", Name: "Pump"})
		if _, ok := props["id"]; ok {
			t.Error("id should never appear in update props")
		}
		if props["name"] != "Pump" {
			t.Errorf("name = %v, want Pump", props["name"])
		}
	})

	t.Run("empty name is not a clear", func(t *testing.T) {
		props := updateProps(graph.ElementSpec{ID: "e-1", Status: "draft"})
		if _, ok := props["name"]; ok {
			t.Error("absent name should not clobber the stored one")
		}
		if props["status"] != "draft" {
			t.Errorf("status = %v, want draft", props["status"])
		}
	})

	t.Run("explicit clears survive", func(t *testing.T) {
		props := updateProps(graph.ElementSpec{ID: "e-1", InternalTransitions: []any{}})
		v, ok := props["internalTransitions"]
		if !ok || v != nil {
			t.Errorf("internalTransitions = %v (present=%v), want explicit nil", v, ok)
		}
	})
}

func TestListElementsQuery(t *testing.T) {
	t.Run("no viewpoint lists everything", func(t *testing.T) {
		query, params := listElementsQuery("")
		if strings.Contains(query, "$labels") {
			t.Errorf("unfiltered query should not reference $labels: %s", query)
		}
		if len(params) != 0 {
			t.Errorf("params = %v, want empty", params)
		}
	})

	t.Run("viewpoint kinds become label parameters", func(t *testing.T) {
		query, params := listElementsQuery("sysml.state")
		if !strings.Contains(query, "$labels") {
			t.Errorf("filtered query should reference $labels: %s", query)
		}
		want := []string{"StateDefinition", "StateUsage"}
		if got, ok := params["labels"].([]string); !ok || !reflect.DeepEqual(got, want) {
			t.Errorf("labels = %v, want %v", params["labels"], want)
		}
	})

	t.Run("unknown viewpoint matches nothing", func(t *testing.T) {
		query, params := listElementsQuery("sysml.bogus")
		if !strings.Contains(query, "$labels") {
			t.Errorf("unknown viewpoint should still filter: %s", query)
		}
		if got, ok := params["labels"].([]string); !ok || len(got) != 0 {
			t.Errorf("labels = %v, want empty list", params["labels"])
		}
	})
}
