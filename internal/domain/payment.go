package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusChecking PaymentStatus = "CHECKING"
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

type Subscription struct {
	ID                  int64  `json:"id" gorm:"primaryKey"`
	Name                string `json:"name" gorm:"not null"`
	Description         string `json:"description"`
	Price               int64  `json:"price" gorm:"not null"`
	BillingPeriodInDays int    `json:"billing_period_in_days" gorm:"not null"`
}

func (Subscription) TableName() string { return "subscriptions" }

// PaymentHistory is a ledger row. New rows start as CHECKING; an operator
// later flips them to SUCCESS or FAILED.
type PaymentHistory struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:uuid;index;not null"`
	User           *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SubscriptionID int64         `json:"subscription_id" gorm:"not null"`
	Subscription   *Subscription `json:"-" gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE"`
	Price          int64         `json:"price" gorm:"not null"`
	Status         PaymentStatus `json:"status" gorm:"not null"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (PaymentHistory) TableName() string { return "payment_histories" }
