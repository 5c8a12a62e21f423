package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/vocabulary/sysml"
	"github.com/c360studio/sysmlstudio/viewpoint"
)

// CreateRelationship stores a typed edge between two existing elements.
// The edge kind must be declared by some viewpoint (relationship types,
// like labels, cannot be parameterized). Returns ErrNotFound when either
// endpoint does not exist.
func (s *Store) CreateRelationship(ctx context.Context, spec graph.RelationshipSpec) (graph.RelationshipSpec, error) {
	if !viewpoint.IsEdgeKind(spec.Type) {
		return graph.RelationshipSpec{}, fmt.Errorf("create relationship kind %q: %w", spec.Type, ErrUnknownKind)
	}
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf(
		"MATCH (a:%s {id: $source}), (b:%s {id: $target}) CREATE (a)-[r:%s]->(b) SET r = $props RETURN r, a.id AS source, b.id AS target",
		sysml.GenericLabel, sysml.GenericLabel, sysml.EdgeKindToRelType(spec.Type))

	result, err := session.Run(ctx, query, map[string]any{
		"source": spec.Source,
		"target": spec.Target,
		"props":  graph.EncodeRelationship(spec),
	})
	if err != nil {
		return graph.RelationshipSpec{}, fmt.Errorf("create relationship: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return graph.RelationshipSpec{}, fmt.Errorf("create relationship: %w", err)
		}
		return graph.RelationshipSpec{}, fmt.Errorf("create relationship %s -> %s: %w", spec.Source, spec.Target, ErrNotFound)
	}

	created, ok := relationshipFromRecord(result.Record())
	if !ok {
		return graph.RelationshipSpec{}, fmt.Errorf("create relationship: result record missing edge")
	}

	s.events.RelationshipChanged(ctx, ActionCreated, created)
	return created, nil
}

// DeleteRelationship removes one edge by id. Returns ErrNotFound when no
// edge carries the id.
func (s *Store) DeleteRelationship(ctx context.Context, id string) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf(
		"MATCH (:%s)-[r {id: $id}]->(:%s) WITH r, r.id AS deleted DELETE r RETURN deleted",
		sysml.GenericLabel, sysml.GenericLabel)

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	if !result.Next(ctx) {
		return fmt.Errorf("delete relationship %s: %w", id, ErrNotFound)
	}

	s.events.RelationshipDeleted(ctx, id)
	return nil
}

// relationshipFromRecord maps a record holding an edge r plus source/target
// aliases back to a relationship spec.
func relationshipFromRecord(record *neo4j.Record) (graph.RelationshipSpec, bool) {
	raw, ok := record.Get("r")
	if !ok {
		return graph.RelationshipSpec{}, false
	}
	rel, ok := raw.(neo4j.Relationship)
	if !ok {
		return graph.RelationshipSpec{}, false
	}

	source, _ := stringValue(record, "source")
	target, _ := stringValue(record, "target")
	return graph.DecodeRelationship(rel.Type, source, target, rel.Props), true
}

// stringValue extracts a string value from a record by alias.
func stringValue(record *neo4j.Record, alias string) (string, bool) {
	raw, ok := record.Get(alias)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}
