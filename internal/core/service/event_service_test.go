package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
)

func TestEventService_ListAll(t *testing.T) {
	svc := NewEventService(zerolog.Nop())

	events, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(events) != len(sampleAdminEvents) {
		t.Fatalf("expected %d events, got %d", len(sampleAdminEvents), len(events))
	}

	// Callers get a copy; mutating it must not leak into the catalog.
	events[0].Title = "changed"
	again, _ := svc.ListAll(context.Background())
	if again[0].Title != "Sample Event 1" {
		t.Fatalf("catalog was mutated: %q", again[0].Title)
	}
}

func TestEventService_ListForUser(t *testing.T) {
	svc := NewEventService(zerolog.Nop())

	events, err := svc.ListForUser(context.Background(), domain.Identity{UserID: 1, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(events) != 2 || events[0].Title != "My Event 1" {
		t.Fatalf("unexpected events: %+v", events)
	}
}
