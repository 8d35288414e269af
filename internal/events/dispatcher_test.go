package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := Event{Type: EventTicketCreated, TicketID: "TCK-1700000000000"}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].TicketID != event.TicketID {
		t.Fatalf("expected ticket id %q, got %q", event.TicketID, got[0].TicketID)
	}
}

func TestDispatcher_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	delivered := false
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !delivered {
		t.Fatal("second handler not invoked after first handler error")
	}
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if called {
		t.Fatal("handler invoked for a type it never subscribed to")
	}
}
