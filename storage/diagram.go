package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/vocabulary/sysml"
	"github.com/c360studio/sysmlstudio/viewpoint"
)

// ViewResult is a renderable subgraph for one viewpoint: the elements whose
// kinds the viewpoint declares plus the matching typed edges. The nodes/edges
// shape is the standard contract for frontend graph rendering.
type ViewResult struct {
	Viewpoint viewpoint.Viewpoint      `json:"viewpoint"`
	Nodes     []Element                `json:"nodes"`
	Edges     []graph.RelationshipSpec `json:"edges"`
}

// Subgraph returns the subset of the model relevant to one viewpoint.
// An unknown viewpoint id yields an empty result, not an error.
func (s *Store) Subgraph(ctx context.Context, viewpointID string) (ViewResult, error) {
	vp, ok := viewpoint.ByID(viewpointID)
	if !ok {
		return ViewResult{
			Viewpoint: viewpoint.Viewpoint{ID: viewpointID, NodeKinds: []string{}, EdgeKinds: []string{}},
			Nodes:     []Element{},
			Edges:     []graph.RelationshipSpec{},
		}, nil
	}

	nodes, err := s.ListElements(ctx, viewpointID)
	if err != nil {
		return ViewResult{}, fmt.Errorf("view %s: %w", viewpointID, err)
	}

	edges, err := s.viewEdges(ctx, vp.EdgeKinds)
	if err != nil {
		return ViewResult{}, fmt.Errorf("view %s: %w", viewpointID, err)
	}

	return ViewResult{Viewpoint: vp, Nodes: nodes, Edges: edges}, nil
}

// viewEdges fetches all edges whose relationship type matches one of the
// given edge kinds. Types are passed as parameters to the type() filter.
func (s *Store) viewEdges(ctx context.Context, edgeKinds []string) ([]graph.RelationshipSpec, error) {
	edges := []graph.RelationshipSpec{}
	if len(edgeKinds) == 0 {
		return edges, nil
	}

	relTypes := make([]string, len(edgeKinds))
	for i, kind := range edgeKinds {
		relTypes[i] = sysml.EdgeKindToRelType(kind)
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := fmt.Sprintf(
		"MATCH (a:%s)-[r]->(b:%s) WHERE type(r) IN $types RETURN r, a.id AS source, b.id AS target",
		sysml.GenericLabel, sysml.GenericLabel)

	result, err := session.Run(ctx, query, map[string]any{"types": relTypes})
	if err != nil {
		return nil, fmt.Errorf("view edges: %w", err)
	}

	for result.Next(ctx) {
		if edge, ok := relationshipFromRecord(result.Record()); ok {
			edges = append(edges, edge)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("view edges: %w", err)
	}
	return edges, nil
}

// UpdateLayout stores the diagram position of one element in one viewpoint.
// Positions for other viewpoints are preserved; a corrupt stored layout map
// is logged and rebuilt rather than failing the update. Read and write run
// in one transaction so concurrent updates for the same element cannot drop
// each other's positions.
func (s *Store) UpdateLayout(ctx context.Context, elementID, viewpointID string, pos graph.Position) error {
	if _, ok := viewpoint.ByID(viewpointID); !ok {
		return fmt.Errorf("update layout viewpoint %q: %w", viewpointID, ErrUnknownViewpoint)
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		readQuery := fmt.Sprintf("MATCH (n:%s {id: $id}) RETURN n.layoutPositions AS layout", sysml.GenericLabel)
		result, err := tx.Run(ctx, readQuery, map[string]any{"id": elementID})
		if err != nil {
			return nil, fmt.Errorf("read layout: %w", err)
		}
		if !result.Next(ctx) {
			if err := result.Err(); err != nil {
				return nil, fmt.Errorf("read layout: %w", err)
			}
			return nil, ErrNotFound
		}

		stored, _ := result.Record().Get("layout")
		encoded, err := s.mergeLayout(elementID, stored, viewpointID, pos)
		if err != nil {
			return nil, err
		}

		writeQuery := fmt.Sprintf("MATCH (n:%s {id: $id}) SET n.layoutPositions = $layout", sysml.GenericLabel)
		if _, err := tx.Run(ctx, writeQuery, map[string]any{
			"id":     elementID,
			"layout": encoded,
		}); err != nil {
			return nil, fmt.Errorf("write layout: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("update layout for %s: %w", elementID, err)
	}
	return nil
}

// mergeLayout folds one viewpoint's position into the stored layoutPositions
// property and returns the re-encoded JSON text. Positions for other
// viewpoints survive; a corrupt stored map is rebuilt from scratch.
func (s *Store) mergeLayout(elementID string, stored any, viewpointID string, pos graph.Position) (string, error) {
	positions := map[string]graph.Position{}
	if text, ok := stored.(string); ok {
		if err := json.Unmarshal([]byte(text), &positions); err != nil {
			s.logger.Warn("Rebuilding corrupt layout map",
				"element_id", elementID,
				"error", err.Error())
			positions = map[string]graph.Position{}
		}
	}
	positions[viewpointID] = pos

	encoded, err := json.Marshal(positions)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(encoded), nil
}
