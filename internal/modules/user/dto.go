package user

import (
	"encoding/json"

	"dressup/internal/domain"
)

// UpdateMeRequest patches the caller's profile. Every field is optional;
// only non-nil fields are written.
type UpdateMeRequest struct {
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Gender    *string   `json:"gender"`
	AvatarURL *string   `json:"avatar_url"`
	Styles    *[]string `json:"styles"`
	Bust      *int      `json:"bust"`
	Waist     *int      `json:"waist"`
	Hip       *int      `json:"hip"`
	Weight    *int      `json:"weight"`
	Height    *int      `json:"height"`
	Password  *string   `json:"password"`
}

type ContactRequest struct {
	Message string `json:"message" binding:"required"`
}

// ProfileResponse is the user entity with styles decoded back into a
// slice. The stored column is a JSON string.
type ProfileResponse struct {
	*domain.User
	Styles []string `json:"styles"`
}

func NewProfileResponse(u *domain.User) ProfileResponse {
	var styles []string
	if u.Styles != "" {
		// a corrupt column falls back to an empty list
		_ = json.Unmarshal([]byte(u.Styles), &styles)
	}
	if styles == nil {
		styles = []string{}
	}
	return ProfileResponse{User: u, Styles: styles}
}
