package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item owned by a user. Private products are visible
// to their owner only; public ones show up in catalog browsing.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;index;not null"`
	Owner       *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Brand       string    `json:"brand,omitempty"`
	Material    string    `json:"material,omitempty"`
	Style       string    `json:"style,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
	IsPublic    bool      `json:"is_public"`
	ShopID      *int64    `json:"shop_id,omitempty"`

	OriginalURL                string `json:"original_url"`
	ShopeeAffiliateURL         string `json:"shopee_affiliate_url,omitempty"`
	LazadaAffiliateURL         string `json:"lazada_affiliate_url,omitempty"`
	TiktokAffiliateURL         string `json:"tiktok_affiliate_url,omitempty"`
	TransparentBackgroundImage string `json:"transparent_background_image,omitempty"`
	ImageURLs                  string `json:"-" gorm:"column:image_urls"` // JSON-encoded []string

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type ProductCategory struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	ProductID  int64     `json:"product_id" gorm:"index;not null;uniqueIndex:idx_product_category"`
	Product    *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CategoryID int64     `json:"category_id" gorm:"index;not null;uniqueIndex:idx_product_category"`
	Category   *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// ProductRating keeps one score per (product, user) pair. Re-rating
// overwrites the previous score.
type ProductRating struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"product_id" gorm:"index;not null;uniqueIndex:idx_rating_product_user"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_rating_product_user"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Score     int       `json:"score" gorm:"not null"`
}

func (ProductRating) TableName() string { return "product_ratings" }

type ProductReview struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"product_id" gorm:"index;not null;uniqueIndex:idx_review_product_user"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_review_product_user"`
	User      *User     `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductReview) TableName() string { return "product_reviews" }
