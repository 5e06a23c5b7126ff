package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the catalog event types recorded in the outbox.
type EventType string

const (
	EventGameUpdated     EventType = "game.updated"
	EventGameSelected    EventType = "game.selected"
	EventLanguageRedrawn EventType = "language.redrawn"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateGame     AggregateType = "game"
	AggregateSettings AggregateType = "settings"
)

// OutboxDraft is the payload written to the event_outbox table.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// GameUpdatedPayload is the body of EventGameUpdated.
type GameUpdatedPayload struct {
	Old Game `json:"old"`
	New Game `json:"new"`
}

// GameSelectedPayload is the body of EventGameSelected.
type GameSelectedPayload struct {
	Old         Game `json:"old"`
	New         Game `json:"new"`
	ForceRedraw bool `json:"forceRedraw"`
}

// NewOutboxDraft builds a draft with a fresh event ID, keyed by aggregate ID.
func NewOutboxDraft(aggregate AggregateType, aggregateID string, eventType EventType, payload any, at time.Time) (OutboxDraft, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxDraft{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: aggregate,
		AggregateID:   aggregateID,
		EventType:     eventType,
		PartitionKey:  aggregateID,
		Headers:       json.RawMessage(`{}`),
		Payload:       body,
		OccurredAt:    at.UTC(),
	}, nil
}
