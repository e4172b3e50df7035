package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleSubscriber UserRole = "SUBSCRIBER"
	RoleUser       UserRole = "USER"
)

type AuthMethod string

const (
	AuthMethodNormal AuthMethod = "NORMAL"
	AuthMethodGoogle AuthMethod = "GOOGLE"
)

type SubscriptionType string

const (
	SubscriptionFree     SubscriptionType = "FREE"
	SubscriptionPremium1 SubscriptionType = "PREMIUM1"
	SubscriptionPremium2 SubscriptionType = "PREMIUM2"
)

// User is an account on the platform. Password is nil for accounts created
// via Google sign-in; those are activated and active by construction.
type User struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    *string    `json:"-" gorm:"column:password"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Gender      string     `json:"gender,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Styles      string     `json:"-" gorm:"column:styles"` // JSON-encoded []string
	Bust        *int       `json:"bust,omitempty"`
	Waist       *int       `json:"waist,omitempty"`
	Hip         *int       `json:"hip,omitempty"`
	Weight      *int       `json:"weight,omitempty"`
	Height      *int       `json:"height,omitempty"`
	Role        UserRole   `json:"role" gorm:"default:USER;not null"`
	IsActive    bool       `json:"is_active" gorm:"default:true;not null"`
	IsActivated bool       `json:"is_activated" gorm:"default:false;not null"`
	AuthMethod  AuthMethod `json:"auth_method" gorm:"default:NORMAL;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// FullName joins the non-empty name parts, falling back to the mailbox
// part of the email when both are empty.
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{u.FirstName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return strings.SplitN(u.Email, "@", 2)[0]
	}
	return strings.Join(parts, " ")
}

// Contact is a message a signed-in user sends to the platform operators.
type Contact struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }
