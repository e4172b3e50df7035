package repository

import (
	"context"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilters narrows List results. OwnerID and PublicOnly are
// combinable: the closet view wants "mine plus public".
type ProductFilters struct {
	SearchKeyword string
	OwnerID       *uuid.UUID
	PublicOnly    bool
	Size          int
	Offset        int
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilters) ([]domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if f.OwnerID != nil && f.PublicOnly {
		query = query.Where("owner_id = ? OR is_public = ?", *f.OwnerID, true)
	} else if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	} else if f.PublicOnly {
		query = query.Where("is_public = ?", true)
	}

	if f.SearchKeyword != "" {
		pattern := "%" + f.SearchKeyword + "%"
		query = query.Where(
			"name LIKE ? OR description LIKE ? OR brand LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if f.Size > 0 {
		query = query.Limit(f.Size).Offset(f.Offset)
	}

	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

// CategoriesByProductIDs returns category names keyed by product id.
func (r *ProductRepository) CategoriesByProductIDs(ctx context.Context, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type row struct {
		ProductID int64
		Name      string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("product_categories").
		Select("product_categories.product_id, categories.name").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Where("product_categories.product_id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rr := range rows {
		out[rr.ProductID] = append(out[rr.ProductID], rr.Name)
	}
	return out, nil
}

// RatingsByUser returns the caller's scores keyed by product id.
func (r *ProductRepository) RatingsByUser(ctx context.Context, userID uuid.UUID, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var ratings []domain.ProductRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, ids).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	for _, rating := range ratings {
		out[rating.ProductID] = rating.Score
	}
	return out, nil
}

// UpsertRating stores the score for (product, user); re-rating overwrites.
func (r *ProductRepository) UpsertRating(ctx context.Context, rating *domain.ProductRating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(rating).Error
}

func (r *ProductRepository) GetReview(ctx context.Context, productID int64, userID uuid.UUID) (*domain.ProductReview, error) {
	var review domain.ProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ProductRepository) CreateReview(ctx context.Context, review *domain.ProductReview) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProductRepository) UpdateReview(ctx context.Context, review *domain.ProductReview) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *ProductRepository) ListReviews(ctx context.Context, productID int64) ([]domain.ProductReview, error) {
	var reviews []domain.ProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ProductRepository) DB() *gorm.DB { return r.db }
