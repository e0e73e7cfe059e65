package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type recordingNotifier struct {
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event Event) error {
	n.events = append(n.events, event)
	return n.err
}

func TestEmitFansOut(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{err: errors.New("boom")}
	third := &recordingNotifier{}
	bus := &Bus{Notifiers: []Notifier{first, second, third}, Log: zerolog.Nop()}

	id := uuid.New()
	if err := bus.Emit(context.Background(), TopicOrderCreated, id, map[string]string{"total": "16.92"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	for i, n := range []*recordingNotifier{first, second, third} {
		if len(n.events) != 1 {
			t.Fatalf("notifier %d received %d events", i, len(n.events))
		}
		if n.events[0].Topic != TopicOrderCreated || n.events[0].AggregateID != id {
			t.Fatalf("notifier %d got unexpected event %+v", i, n.events[0])
		}
	}
}

func TestEmitRequiresTopicAndAggregate(t *testing.T) {
	bus := &Bus{Log: zerolog.Nop()}
	if err := bus.Emit(context.Background(), " ", uuid.New(), nil); err == nil {
		t.Fatal("expected error for blank topic")
	}
	if err := bus.Emit(context.Background(), TopicOrderCreated, uuid.Nil, nil); err == nil {
		t.Fatal("expected error for nil aggregate id")
	}
}
