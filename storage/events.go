package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/sysmlstudio/graph"
	"github.com/c360studio/sysmlstudio/vocabulary/sysml"
)

// Subject prefix for model change events. The full subject is
// model.events.<entity>.<action>, e.g. model.events.element.created.
const ModelEventSubject = "model.events"

// Event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// eventSource identifies this store as the triple provenance.
const eventSource = "sysmlstudio.store"

// ModelEvent is the message format for model change events.
// Matches the entity ingest format used by semstreams graph consumers.
type ModelEvent struct {
	ID        string           `json:"id"`
	Entity    string           `json:"entity"`
	Action    string           `json:"action"`
	Triples   []message.Triple `json:"triples,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// EventPublisher publishes model change events to NATS. A nil publisher or
// a publisher without a client is valid and skips publishing, so the store
// works without a running NATS server.
type EventPublisher struct {
	nc     *natsclient.Client
	logger *slog.Logger
}

// NewEventPublisher wires a publisher to a NATS client. The client may be nil.
func NewEventPublisher(nc *natsclient.Client, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{nc: nc, logger: logger}
}

// ElementChanged publishes a created/updated event for one element.
func (p *EventPublisher) ElementChanged(ctx context.Context, action string, el Element) {
	if p == nil || p.nc == nil {
		return // Skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	p.publish(ctx, "element", action, ModelEvent{
		ID:        ElementEntityID(el.ID),
		Entity:    "element",
		Action:    action,
		Triples:   elementTriples(el, now),
		UpdatedAt: now,
	})
}

// ElementDeleted publishes a deletion event. Deletions carry no triples;
// the id alone identifies the entity to retract.
func (p *EventPublisher) ElementDeleted(ctx context.Context, id string) {
	if p == nil || p.nc == nil {
		return
	}

	p.publish(ctx, "element", ActionDeleted, ModelEvent{
		ID:        ElementEntityID(id),
		Entity:    "element",
		Action:    ActionDeleted,
		UpdatedAt: time.Now(),
	})
}

// RelationshipChanged publishes a created/updated event for one edge.
func (p *EventPublisher) RelationshipChanged(ctx context.Context, action string, spec graph.RelationshipSpec) {
	if p == nil || p.nc == nil {
		return
	}

	now := time.Now()
	p.publish(ctx, "relationship", action, ModelEvent{
		ID:        RelationshipEntityID(spec.ID),
		Entity:    "relationship",
		Action:    action,
		Triples:   relationshipTriples(spec, now),
		UpdatedAt: now,
	})
}

// RelationshipDeleted publishes a deletion event for one edge.
func (p *EventPublisher) RelationshipDeleted(ctx context.Context, id string) {
	if p == nil || p.nc == nil {
		return
	}

	p.publish(ctx, "relationship", ActionDeleted, ModelEvent{
		ID:        RelationshipEntityID(id),
		Entity:    "relationship",
		Action:    ActionDeleted,
		UpdatedAt: time.Now(),
	})
}

// publish marshals and sends one event. Publish failures are logged, never
// surfaced: persistence already succeeded and events are best-effort.
func (p *EventPublisher) publish(ctx context.Context, entity, action string, evt ModelEvent) {
	subject := fmt.Sprintf("%s.%s.%s", ModelEventSubject, entity, action)

	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Warn("Failed to marshal model event",
			"subject", subject,
			"error", err.Error())
		return
	}

	if err := p.nc.PublishToStream(ctx, subject, data); err != nil {
		p.logger.Warn("Failed to publish model event",
			"subject", subject,
			"error", err.Error())
	}
}

// elementTriples builds the triple view of an element. Only identity and
// scalar metadata are published; structured fields stay in the graph store.
func elementTriples(el Element, now time.Time) []message.Triple {
	entityID := ElementEntityID(el.ID)

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  sysml.ElementName,
			Object:     el.Name,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  sysml.ElementKind,
			Object:     el.Kind,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	if el.Stereotype != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  sysml.ElementStereotype,
			Object:     el.Stereotype,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if el.Status != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  sysml.ElementStatus,
			Object:     el.Status,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	if el.Description != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  sysml.ElementDescription,
			Object:     el.Description,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return triples
}

// relationshipTriples builds the triple view of an edge.
func relationshipTriples(spec graph.RelationshipSpec, now time.Time) []message.Triple {
	entityID := RelationshipEntityID(spec.ID)

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  sysml.RelationshipType,
			Object:     spec.Type,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  sysml.RelationshipSource,
			Object:     ElementEntityID(spec.Source),
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  sysml.RelationshipTarget,
			Object:     ElementEntityID(spec.Target),
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	if spec.Label != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  sysml.RelationshipLabel,
			Object:     spec.Label,
			Source:     eventSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return triples
}

// ElementEntityID generates a consistent entity ID for an element.
// Format: sysmlstudio.local.model.element.<id>
func ElementEntityID(id string) string {
	return fmt.Sprintf("sysmlstudio.local.model.element.%s", id)
}

// RelationshipEntityID generates a consistent entity ID for a relationship.
// Format: sysmlstudio.local.model.relationship.<id>
func RelationshipEntityID(id string) string {
	return fmt.Sprintf("sysmlstudio.local.model.relationship.%s", id)
}
