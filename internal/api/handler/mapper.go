package handler

import (
	"github.com/eventra/eventra-api/internal/core/ports"
)

const tokenType = "Bearer"

// --- Request → Service input ---

func toSignupInput(req signupRequest) ports.SignupInput {
	return ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
}

// --- Service output → Response ---

func toLoginResponse(r *ports.LoginResult) loginResponse {
	return loginResponse{
		Token:       r.Token,
		Type:        tokenType,
		ID:          r.UserID,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Roles:       nonNil(r.Roles),
		Permissions: nonNil(r.Permissions),
	}
}

func toUserSummaries(in []ports.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(in))
	for _, u := range in {
		out = append(out, userSummaryResponse{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedAt: u.CreatedAt,
			Enabled:   u.Enabled,
			Roles:     nonNil(u.Roles),
		})
	}
	return out
}

func toAdminEvents(in []ports.AdminEvent) []adminEventResponse {
	out := make([]adminEventResponse, 0, len(in))
	for _, e := range in {
		out = append(out, adminEventResponse{
			ID:           e.ID,
			Title:        e.Title,
			Date:         e.Date,
			Participants: e.ParticipantCount,
			Status:       e.Status,
		})
	}
	return out
}

func toUserEvents(in []ports.UserEvent) []userEventResponse {
	out := make([]userEventResponse, 0, len(in))
	for _, e := range in {
		out = append(out, userEventResponse{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			Description: e.Description,
		})
	}
	return out
}

// nonNil keeps empty sets rendering as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
