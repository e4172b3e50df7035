package product

import (
	"encoding/json"

	"dressup/internal/domain"
)

type CreateProductRequest struct {
	Name                       string   `json:"name" binding:"required"`
	Description                string   `json:"description"`
	Brand                      string   `json:"brand"`
	Material                   string   `json:"material"`
	Style                      string   `json:"style"`
	Pattern                    string   `json:"pattern"`
	OriginalURL                string   `json:"original_url"`
	ShopeeAffiliateURL         string   `json:"shopee_affiliate_url"`
	LazadaAffiliateURL         string   `json:"lazada_affiliate_url"`
	TiktokAffiliateURL         string   `json:"tiktok_affiliate_url"`
	TransparentBackgroundImage string   `json:"transparent_background_image"`
	ImageURLs                  []string `json:"image_urls"`
}

// UpdateProductRequest patches a product; only non-nil fields are applied.
type UpdateProductRequest struct {
	Name                       *string   `json:"name"`
	Description                *string   `json:"description"`
	Brand                      *string   `json:"brand"`
	Material                   *string   `json:"material"`
	Style                      *string   `json:"style"`
	Pattern                    *string   `json:"pattern"`
	IsPublic                   *bool     `json:"is_public"`
	OriginalURL                *string   `json:"original_url"`
	ShopeeAffiliateURL         *string   `json:"shopee_affiliate_url"`
	LazadaAffiliateURL         *string   `json:"lazada_affiliate_url"`
	TiktokAffiliateURL         *string   `json:"tiktok_affiliate_url"`
	TransparentBackgroundImage *string   `json:"transparent_background_image"`
	ImageURLs                  *[]string `json:"image_urls"`
}

type RateRequest struct {
	Score int `json:"score" binding:"required"`
}

type ReviewRequest struct {
	Content string `json:"content" binding:"required"`
}

type ListQuery struct {
	SearchKeyword string `form:"search_keyword"`
	Size          int    `form:"size,default=20"`
	Offset        int    `form:"offset,default=0"`
}

// ProductResponse carries the entity plus the per-product aggregates the
// catalog views need.
type ProductResponse struct {
	*domain.Product
	ImageURLs  []string `json:"image_urls"`
	Categories []string `json:"categories"`
	MyRating   *int     `json:"my_rating,omitempty"`
}

type ListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
}

func NewProductResponse(p *domain.Product, categories []string, myRating *int) ProductResponse {
	var urls []string
	if p.ImageURLs != "" {
		_ = json.Unmarshal([]byte(p.ImageURLs), &urls)
	}
	if urls == nil {
		urls = []string{}
	}
	if categories == nil {
		categories = []string{}
	}
	return ProductResponse{
		Product:    p,
		ImageURLs:  urls,
		Categories: categories,
		MyRating:   myRating,
	}
}

func encodeImageURLs(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
