package product

import (
	"context"
	"errors"

	"dressup/internal/domain"
	"dressup/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryInterface interface {
	List(ctx context.Context, f repository.ProductFilters) ([]domain.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	CategoriesByProductIDs(ctx context.Context, ids []int64) (map[int64][]string, error)
	RatingsByUser(ctx context.Context, userID uuid.UUID, ids []int64) (map[int64]int, error)
	UpsertRating(ctx context.Context, rating *domain.ProductRating) error
	GetReview(ctx context.Context, productID int64, userID uuid.UUID) (*domain.ProductReview, error)
	CreateReview(ctx context.Context, review *domain.ProductReview) error
	UpdateReview(ctx context.Context, review *domain.ProductReview) error
	ListReviews(ctx context.Context, productID int64) ([]domain.ProductReview, error)
}

// Service implements catalog browsing, ownership-gated writes, ratings and
// reviews.
type Service struct {
	products ProductRepositoryInterface
}

func NewService(products ProductRepositoryInterface) *Service {
	return &Service{products: products}
}

// ListPublic returns public products only. viewerID, when set, attaches
// the caller's own scores to the rows.
func (s *Service) ListPublic(ctx context.Context, q ListQuery, viewerID *uuid.UUID) (*ListResponse, error) {
	return s.list(ctx, repository.ProductFilters{
		SearchKeyword: q.SearchKeyword,
		PublicOnly:    true,
		Size:          q.Size,
		Offset:        q.Offset,
	}, viewerID)
}

// ListMine returns the caller's products, public or not.
func (s *Service) ListMine(ctx context.Context, q ListQuery, ownerID uuid.UUID) (*ListResponse, error) {
	return s.list(ctx, repository.ProductFilters{
		SearchKeyword: q.SearchKeyword,
		OwnerID:       &ownerID,
		Size:          q.Size,
		Offset:        q.Offset,
	}, &ownerID)
}

func (s *Service) list(ctx context.Context, f repository.ProductFilters, viewerID *uuid.UUID) (*ListResponse, error) {
	products, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	categories, err := s.products.CategoriesByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var ratings map[int64]int
	if viewerID != nil {
		ratings, err = s.products.RatingsByUser(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		p := &products[i]
		var myRating *int
		if score, ok := ratings[p.ID]; ok {
			r := score
			myRating = &r
		}
		items[i] = NewProductResponse(p, categories[p.ID], myRating)
	}

	return &ListResponse{Items: items, Total: total}, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*domain.Product, error) {
	encoded, err := encodeImageURLs(req.ImageURLs)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		OwnerID:                    ownerID,
		Name:                       req.Name,
		Description:                req.Description,
		Brand:                      req.Brand,
		Material:                   req.Material,
		Style:                      req.Style,
		Pattern:                    req.Pattern,
		IsPublic:                   false,
		OriginalURL:                req.OriginalURL,
		ShopeeAffiliateURL:         req.ShopeeAffiliateURL,
		LazadaAffiliateURL:         req.LazadaAffiliateURL,
		TiktokAffiliateURL:         req.TiktokAffiliateURL,
		TransparentBackgroundImage: req.TransparentBackgroundImage,
		ImageURLs:                  encoded,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get enforces owned-or-public visibility.
func (s *Service) Get(ctx context.Context, id int64, viewerID *uuid.UUID) (*ProductResponse, error) {
	p, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic && (viewerID == nil || p.OwnerID != *viewerID) {
		return nil, ErrNotProductOwner
	}

	categories, err := s.products.CategoriesByProductIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	var myRating *int
	if viewerID != nil {
		ratings, err := s.products.RatingsByUser(ctx, *viewerID, []int64{id})
		if err != nil {
			return nil, err
		}
		if score, ok := ratings[id]; ok {
			r := score
			myRating = &r
		}
	}

	resp := NewProductResponse(p, categories[id], myRating)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, callerID uuid.UUID, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Material != nil {
		p.Material = *req.Material
	}
	if req.Style != nil {
		p.Style = *req.Style
	}
	if req.Pattern != nil {
		p.Pattern = *req.Pattern
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	if req.OriginalURL != nil {
		p.OriginalURL = *req.OriginalURL
	}
	if req.ShopeeAffiliateURL != nil {
		p.ShopeeAffiliateURL = *req.ShopeeAffiliateURL
	}
	if req.LazadaAffiliateURL != nil {
		p.LazadaAffiliateURL = *req.LazadaAffiliateURL
	}
	if req.TiktokAffiliateURL != nil {
		p.TiktokAffiliateURL = *req.TiktokAffiliateURL
	}
	if req.TransparentBackgroundImage != nil {
		p.TransparentBackgroundImage = *req.TransparentBackgroundImage
	}
	if req.ImageURLs != nil {
		encoded, err := encodeImageURLs(*req.ImageURLs)
		if err != nil {
			return nil, err
		}
		p.ImageURLs = encoded
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64, callerID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, callerID); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// Rate stores the caller's score for a visible product. Re-rating
// replaces the previous score.
func (s *Service) Rate(ctx context.Context, productID int64, userID uuid.UUID, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}

	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !p.IsPublic && p.OwnerID != userID {
		return ErrNotProductOwner
	}

	return s.products.UpsertRating(ctx, &domain.ProductRating{
		ProductID: productID,
		UserID:    userID,
		Score:     score,
	})
}

func (s *Service) CreateReview(ctx context.Context, productID int64, userID uuid.UUID, content string) (*domain.ProductReview, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic && p.OwnerID != userID {
		return nil, ErrNotProductOwner
	}

	review := &domain.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.products.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewAlreadyExists
		}
		return nil, err
	}
	return review, nil
}

func (s *Service) UpdateReview(ctx context.Context, productID int64, userID uuid.UUID, content string) (*domain.ProductReview, error) {
	review, err := s.products.GetReview(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	review.Content = content
	if err := s.products.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) ListReviews(ctx context.Context, productID int64) ([]domain.ProductReview, error) {
	if _, err := s.getProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.products.ListReviews(ctx, productID)
}

func (s *Service) getProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) getOwned(ctx context.Context, id int64, callerID uuid.UUID) (*domain.Product, error) {
	p, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, ErrNotProductOwner
	}
	return p, nil
}
