package events

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event is one emitted domain event.
type Event struct {
	Topic       string
	AggregateID uuid.UUID
	Payload     any
}

// Notifier reacts to emitted events (logging, email, metrics and so on).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus fans emitted events out to the configured notifiers in-process.
// Delivery is best-effort: a failing notifier does not stop the others.
type Bus struct {
	Notifiers []Notifier
	Log       zerolog.Logger
}

// Emit dispatches the event to all configured notifiers.
func (b *Bus) Emit(ctx context.Context, topic string, aggregateID uuid.UUID, payload any) error {
	if b == nil {
		return errors.New("events: bus not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("events: topic is required")
	}
	if aggregateID == uuid.Nil {
		return errors.New("events: aggregate id is required")
	}
	event := Event{Topic: topic, AggregateID: aggregateID, Payload: payload}
	for _, n := range b.Notifiers {
		if err := n.Notify(ctx, event); err != nil {
			b.Log.Error().Err(err).Str("topic", topic).Msg("event notifier failed")
		}
	}
	return nil
}

// LogNotifier writes a structured log line per event.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Log.Info().
		Str("topic", event.Topic).
		Str("aggregate_id", event.AggregateID.String()).
		Interface("payload", event.Payload).
		Msg("domain_event")
	return nil
}
