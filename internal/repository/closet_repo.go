package repository

import (
	"context"
	"errors"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosetRepository struct {
	db *gorm.DB
}

func NewClosetRepository(db *gorm.DB) *ClosetRepository {
	return &ClosetRepository{db: db}
}

// GetOrCreateByOwner returns the owner's closet, creating an empty one on
// first access.
func (r *ClosetRepository) GetOrCreateByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Closet, error) {
	var closet domain.Closet
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&closet).Error
	if err == nil {
		return &closet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	closet = domain.Closet{OwnerID: ownerID}
	if err := r.db.WithContext(ctx).Create(&closet).Error; err != nil {
		return nil, err
	}
	return &closet, nil
}

func (r *ClosetRepository) GetItemProductIDs(ctx context.Context, closetID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.ClosetItem{}).
		Where("closet_id = ?", closetID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ApplyUpdate adds and removes items in one transaction so a rejected
// update leaves the closet untouched.
func (r *ClosetRepository) ApplyUpdate(ctx context.Context, closetID uuid.UUID, addIDs, removeIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(addIDs) > 0 {
			items := make([]domain.ClosetItem, 0, len(addIDs))
			for _, productID := range addIDs {
				items = append(items, domain.ClosetItem{ClosetID: closetID, ProductID: productID})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(removeIDs) > 0 {
			if err := tx.Where("closet_id = ? AND product_id IN ?", closetID, removeIDs).
				Delete(&domain.ClosetItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClosetRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var closet domain.Closet
		err := tx.Where("owner_id = ?", ownerID).First(&closet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("closet_id = ?", closet.ID).Delete(&domain.ClosetItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&closet).Error
	})
}
