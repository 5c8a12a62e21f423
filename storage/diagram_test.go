package storage

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/c360studio/sysmlstudio/graph"
)

func testStore() *Store {
	return &Store{logger: slog.Default()}
}

func TestMergeLayoutPreservesOtherViewpoints(t *testing.T) {
	s := testStore()
	stored := `{"sysml.structure":{"x":10,"y":20}}`

	encoded, err := s.mergeLayout("e-1", stored, "sysml.state", graph.Position{X: 120, Y: 80})
	if err != nil {
		t.Fatalf("mergeLayout: %v", err)
	}

	var positions map[string]graph.Position
	if err := json.Unmarshal([]byte(encoded), &positions); err != nil {
		t.Fatalf("decode merged layout: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(positions))
	}
	if got := positions["sysml.structure"]; got.X != 10 || got.Y != 20 {
		t.Errorf("existing position lost: %+v", got)
	}
	if got := positions["sysml.state"]; got.X != 120 || got.Y != 80 {
		t.Errorf("new position = %+v", got)
	}
}

func TestMergeLayoutOverwritesSameViewpoint(t *testing.T) {
	s := testStore()
	stored := `{"sysml.state":{"x":1,"y":2}}`

	encoded, err := s.mergeLayout("e-1", stored, "sysml.state", graph.Position{X: 300, Y: 400})
	if err != nil {
		t.Fatalf("mergeLayout: %v", err)
	}

	var positions map[string]graph.Position
	if err := json.Unmarshal([]byte(encoded), &positions); err != nil {
		t.Fatalf("decode merged layout: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if got := positions["sysml.state"]; got.X != 300 || got.Y != 400 {
		t.Errorf("position not replaced: %+v", got)
	}
}

func TestMergeLayoutHandlesMissingAndCorruptMaps(t *testing.T) {
	tests := []struct {
		name   string
		stored any
	}{
		{name: "no stored layout", stored: nil},
		{name: "corrupt stored layout", stored: `{not valid json`},
		{name: "unexpected stored type", stored: int64(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore()
			encoded, err := s.mergeLayout("e-1", tt.stored, "sysml.usage", graph.Position{X: 5, Y: 6})
			if err != nil {
				t.Fatalf("mergeLayout: %v", err)
			}

			var positions map[string]graph.Position
			if err := json.Unmarshal([]byte(encoded), &positions); err != nil {
				t.Fatalf("decode merged layout: %v", err)
			}
			if len(positions) != 1 {
				t.Fatalf("len(positions) = %d, want 1", len(positions))
			}
			if got := positions["sysml.usage"]; got.X != 5 || got.Y != 6 {
				t.Errorf("position = %+v", got)
			}
		})
	}
}
