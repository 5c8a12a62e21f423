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

// CreateElement stores a new element node with the generic and kind-specific
// labels. A missing spec ID is filled with a generated UUID. The kind must be
// declared by some viewpoint; labels cannot be parameterized in cypher, so
// unchecked kinds are rejected before query construction.
func (s *Store) CreateElement(ctx context.Context, kind string, spec graph.ElementSpec) (Element, error) {
	if !viewpoint.IsNodeKind(kind) {
		return Element{}, fmt.Errorf("create element kind %q: %w", kind, ErrUnknownKind)
	}
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf("CREATE (n:%s:%s) SET n = $props RETURN n",
		sysml.GenericLabel, sysml.KindToLabel(kind))

	result, err := session.Run(ctx, query, map[string]any{
		"props": graph.EncodeElement(spec),
	})
	if err != nil {
		return Element{}, fmt.Errorf("create element: %w", err)
	}

	el, err := s.singleElement(ctx, result)
	if err != nil {
		return Element{}, fmt.Errorf("create element: %w", err)
	}

	s.events.ElementChanged(ctx, ActionCreated, el)
	return el, nil
}

// GetElement fetches one element by id. Returns ErrNotFound when absent.
func (s *Store) GetElement(ctx context.Context, id string) (Element, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := fmt.Sprintf("MATCH (n:%s {id: $id}) RETURN n", sysml.GenericLabel)

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return Element{}, fmt.Errorf("get element: %w", err)
	}

	el, err := s.singleElement(ctx, result)
	if err != nil {
		return Element{}, fmt.Errorf("get element %s: %w", id, err)
	}
	return el, nil
}

// UpdateElement applies a partial update to an existing element. Encoded
// properties merge with `+=`: absent fields leave stored values untouched and
// nil-valued properties (explicit clears) remove them. The element id is
// never rewritten, and an absent name does not clobber the stored one.
func (s *Store) UpdateElement(ctx context.Context, id string, spec graph.ElementSpec) (Element, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf("MATCH (n:%s {id: $id}) SET n += $props RETURN n", sysml.GenericLabel)

	result, err := session.Run(ctx, query, map[string]any{
		"id":    id,
		"props": updateProps(spec),
	})
	if err != nil {
		return Element{}, fmt.Errorf("update element: %w", err)
	}

	el, err := s.singleElement(ctx, result)
	if err != nil {
		return Element{}, fmt.Errorf("update element %s: %w", id, err)
	}

	s.events.ElementChanged(ctx, ActionUpdated, el)
	return el, nil
}

// DeleteElement removes an element and all its relationships (cascade via
// DETACH DELETE). Returns ErrNotFound when the id does not exist.
func (s *Store) DeleteElement(ctx context.Context, id string) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf("MATCH (n:%s {id: $id}) WITH n, n.id AS deleted DETACH DELETE n RETURN deleted",
		sysml.GenericLabel)

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete element: %w", err)
	}
	if !result.Next(ctx) {
		return fmt.Errorf("delete element %s: %w", id, ErrNotFound)
	}

	s.events.ElementDeleted(ctx, id)
	return nil
}

// ListElements returns elements ordered by name, optionally filtered to the
// kinds of one viewpoint. An unknown viewpoint id yields an empty list, the
// same as a viewpoint with no matching elements.
func (s *Store) ListElements(ctx context.Context, viewpointID string) ([]Element, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query, params := listElementsQuery(viewpointID)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}

	elements := []Element{}
	for result.Next(ctx) {
		node, ok := nodeValue(result.Record(), "n")
		if !ok {
			continue
		}
		elements = append(elements, s.decodeNode(node))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	return elements, nil
}

// listElementsQuery builds the list query. Kind filters are passed as label
// parameters, never interpolated.
func listElementsQuery(viewpointID string) (string, map[string]any) {
	if viewpointID == "" {
		return fmt.Sprintf("MATCH (n:%s) RETURN n ORDER BY n.name", sysml.GenericLabel), map[string]any{}
	}

	nodeKinds, _ := viewpoint.AvailableTypes(viewpointID)
	labels := make([]string, len(nodeKinds))
	for i, kind := range nodeKinds {
		labels[i] = sysml.KindToLabel(kind)
	}

	query := fmt.Sprintf(
		"MATCH (n:%s) WHERE any(l IN labels(n) WHERE l IN $labels) RETURN n ORDER BY n.name",
		sysml.GenericLabel)
	return query, map[string]any{"labels": labels}
}

// singleElement consumes the first record of a result expected to hold one
// node named n. No record means the element does not exist.
func (s *Store) singleElement(ctx context.Context, result neo4j.ResultWithContext) (Element, error) {
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return Element{}, err
		}
		return Element{}, ErrNotFound
	}
	node, ok := nodeValue(result.Record(), "n")
	if !ok {
		return Element{}, fmt.Errorf("result record missing node")
	}
	return s.decodeNode(node), nil
}

// nodeValue extracts a node value from a record by alias.
func nodeValue(record *neo4j.Record, alias string) (neo4j.Node, bool) {
	raw, ok := record.Get(alias)
	if !ok {
		return neo4j.Node{}, false
	}
	node, ok := raw.(neo4j.Node)
	return node, ok
}

// updateProps encodes a partial-update spec. Mandatory fields are written
// unconditionally by the codec, but a partial update carries them only when
// they change: an empty id or name here means "not provided", so both are
// stripped instead of clobbering stored values.
func updateProps(spec graph.ElementSpec) map[string]any {
	props := graph.EncodeElement(spec)
	delete(props, "id")
	if spec.Name == "" {
		delete(props, "name")
	}
	return props
}
