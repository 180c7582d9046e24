package ports

import (
	"context"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// AdminEvent is a row of the admin event overview.
type AdminEvent struct {
	ID               int64
	Title            string
	Date             string
	ParticipantCount int
	Status           string
}

// UserEvent is an event the caller is attending.
type UserEvent struct {
	ID          int64
	Title       string
	Date        string
	Description string
}

// EventService serves the event listings. Events are catalog data, not a
// managed domain: there is no create or update path.
type EventService interface {
	ListAll(ctx context.Context) ([]AdminEvent, error)
	ListForUser(ctx context.Context, identity domain.Identity) ([]UserEvent, error)
}
