package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Closet is a per-user collection of saved products. Each user has at most
// one closet; it is created lazily on first access.
type Closet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;uniqueIndex;not null"`
	Owner     *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Closet) TableName() string { return "closets" }

func (c *Closet) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ClosetItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ClosetID  uuid.UUID `json:"closet_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_closet_product"`
	Closet    *Closet   `json:"-" gorm:"foreignKey:ClosetID;constraint:OnDelete:CASCADE"`
	ProductID int64     `json:"product_id" gorm:"not null;uniqueIndex:idx_closet_product"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (ClosetItem) TableName() string { return "closet_items" }
