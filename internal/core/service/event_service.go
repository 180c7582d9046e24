package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

// Sample listings served until events get their own store.
var (
	sampleAdminEvents = []ports.AdminEvent{
		{ID: 1, Title: "Sample Event 1", Date: "2025-08-15", ParticipantCount: 25, Status: "Active"},
		{ID: 2, Title: "Sample Event 2", Date: "2025-08-20", ParticipantCount: 40, Status: "Active"},
		{ID: 3, Title: "Sample Event 3", Date: "2025-08-25", ParticipantCount: 15, Status: "Draft"},
	}
	sampleUserEvents = []ports.UserEvent{
		{ID: 1, Title: "My Event 1", Date: "2025-08-10", Description: "A sample event I'm attending"},
		{ID: 2, Title: "My Event 2", Date: "2025-08-12", Description: "Another event I'm registered for"},
	}
)

type eventService struct {
	log zerolog.Logger
}

// NewEventService returns an EventService backed by the static catalog.
func NewEventService(log zerolog.Logger) ports.EventService {
	return &eventService{log: log}
}

func (s *eventService) ListAll(_ context.Context) ([]ports.AdminEvent, error) {
	return append([]ports.AdminEvent(nil), sampleAdminEvents...), nil
}

func (s *eventService) ListForUser(_ context.Context, identity domain.Identity) ([]ports.UserEvent, error) {
	s.log.Debug().Int64("user_id", identity.UserID).Msg("listing user events")
	return append([]ports.UserEvent(nil), sampleUserEvents...), nil
}
