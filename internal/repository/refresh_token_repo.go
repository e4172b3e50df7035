package repository

import (
	"context"
	"time"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository keeps a single refresh-token row per user with
// upsert-on-rotate semantics: issuing a new token for a user overwrites the
// previous row in place.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Upsert stores the given token for the user, replacing any prior token
// row. The old token value becomes unusable the moment this returns.
func (r *RefreshTokenRepository) Upsert(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"token":      t.Token,
			"expires_at": t.ExpiresAt,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(t).Error
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ExpireByUser pushes the row's expiry into the past instead of deleting
// it, preserving the row shape for idempotent re-issuance.
func (r *RefreshTokenRepository) ExpireByUser(ctx context.Context, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("expires_at", expiresAt).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
