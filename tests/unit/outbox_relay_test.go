package unit

import (
	"context"
	"testing"

	workerapp "eventx/contexts/competition/event-lifecycle-service/application/workers"
	"eventx/internal/shared/events"
)

type capturePublisher struct {
	published []events.Envelope
}

func (p *capturePublisher) Publish(_ context.Context, _ string, envelope events.Envelope) error {
	p.published = append(p.published, envelope)
	return nil
}

func TestOutboxRelayPublishesLifecycleFacts(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	if _, err := w.competition.Handler.CancelEventHandler(ctx, "org-1", event.EventID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	publisher := &capturePublisher{}
	relay := workerapp.OutboxRelay{
		Outbox:    w.competition.Store,
		Publisher: publisher,
		Clock:     w.competition.Store,
		BatchSize: 10,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected published and cancelled facts, got %d", len(publisher.published))
	}
	if publisher.published[0].EventType != "competition.event.published" {
		t.Fatalf("unexpected first fact: %s", publisher.published[0].EventType)
	}
	if publisher.published[1].EventType != "competition.event.cancelled" {
		t.Fatalf("unexpected second fact: %s", publisher.published[1].EventType)
	}

	// Published rows are not replayed.
	publisher.published = nil
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay rerun failed: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Fatalf("expected no replays, got %d", len(publisher.published))
	}
}
