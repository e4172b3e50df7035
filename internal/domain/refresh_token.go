package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is the single long-lived credential a user holds at a time.
//
// One row per user: logging in or refreshing overwrites the row (rotation),
// so the previous token value stops validating immediately. Logout pushes
// ExpiresAt into the past instead of deleting the row.
type RefreshToken struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User   *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `json:"-" gorm:"size:64;index;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
