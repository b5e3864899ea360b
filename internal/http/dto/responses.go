package dto

import "github.com/research-hours/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// MeResponse is the session context: account, grants and the resolved
// working level, which the UI uses to decide which desks to show.
type MeResponse struct {
	User           *models.User       `json:"user"`
	Roles          []models.AdminRole `json:"roles"`
	EffectiveLevel string             `json:"effective_level"`
	ActAsRoleID    *int64             `json:"act_as_role_id,omitempty"`
	PlainUserMode  bool               `json:"plain_user_mode"`
}
