// Package storage persists SysML model elements and relationships in a Neo4j
// property graph.
//
// Nodes carry the generic SysMLElement label plus one kind-specific label;
// properties are the flat map produced by the graph codec. The store owns
// transaction boundaries, existence checks and cascade deletes; the codec
// stays purely structural. Every mutation optionally publishes a model event
// to NATS.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/vocabulary/sysml"
)

// Config holds the graph store connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	// Database selects the Neo4j database; empty means the server default.
	Database string
}

// Element is a stored model element: its kebab-case kind plus the decoded
// domain spec.
type Element struct {
	Kind string `json:"kind"`
	graph.ElementSpec
}

// Store provides element and relationship persistence over Neo4j.
// Safe for concurrent use; sessions are per-call.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
	events   *EventPublisher
}

// New connects to the graph store and verifies connectivity.
// The event publisher may be nil; mutations then skip publishing.
func New(ctx context.Context, cfg Config, events *EventPublisher, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Store{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
		events:   events,
	}, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
}

// decodeNode reconstructs a stored element from a graph node. Decode
// diagnostics are logged with element context and the affected fields are
// dropped, never the element.
func (s *Store) decodeNode(node neo4j.Node) Element {
	el, diags := nodeToElement(node)
	for _, d := range diags {
		s.logger.Warn("Dropped undecodable element field",
			"element_id", el.ID,
			"field", d.Field,
			"error", d.Err.Error())
	}
	return el
}

// nodeToElement is the pure mapping used by the store and its tests. The
// kind is derived from the kind-specific label.
func nodeToElement(node neo4j.Node) (Element, []graph.FieldDiagnostic) {
	spec, diags := graph.DecodeElement(node.Props)
	return Element{
		Kind:        kindFromLabels(node.Labels),
		ElementSpec: spec,
	}, diags
}

// kindFromLabels extracts the kebab-case kind from a node label set by
// skipping the generic label.
func kindFromLabels(labels []string) string {
	for _, label := range labels {
		if label != sysml.GenericLabel {
			return sysml.LabelToKind(label)
		}
	}
	return ""
}
