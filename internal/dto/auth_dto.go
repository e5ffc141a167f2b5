package dto

import "github.com/onelab-dev/community-backend/internal/models"

// TestLoginRequest is the dev-only credentials grant: it upserts a user by
// email, no password involved.
type TestLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type RefreshRequest struct {
	SessionToken string `json:"sessionToken"`
}

type LogoutRequest struct {
	SessionToken string `json:"sessionToken"`
}

type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	SessionToken string      `json:"sessionToken"`
	User         models.User `json:"user"`
}
