package repository

import (
	"context"

	"dressup/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// AdminUserRow is a user joined with the sum of their successful payments.
type AdminUserRow struct {
	domain.User
	TotalPaidAmount int64 `json:"total_paid_amount"`
}

// AdminUserFilters narrows ListUsers. Nil pointer fields mean "no filter".
type AdminUserFilters struct {
	SearchKeyword string
	IsActive      *bool
	IsActivated   *bool
}

// ListUsers returns regular accounts (role USER) with their paid totals.
// Subscription-tier derivation happens in the admin service.
func (r *AdminRepository) ListUsers(ctx context.Context, f AdminUserFilters) ([]AdminUserRow, error) {
	paidSubquery := r.db.Model(&domain.PaymentHistory{}).
		Select("user_id, SUM(price) AS total").
		Where("status = ?", domain.PaymentStatusSuccess).
		Group("user_id")

	query := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("users.*, COALESCE(paid.total, 0) AS total_paid_amount").
		Joins("LEFT JOIN (?) paid ON paid.user_id = users.id", paidSubquery).
		Where("users.role = ?", domain.RoleUser)

	if f.IsActive != nil {
		query = query.Where("users.is_active = ?", *f.IsActive)
	}
	if f.IsActivated != nil {
		query = query.Where("users.is_activated = ?", *f.IsActivated)
	}
	if f.SearchKeyword != "" {
		pattern := "%" + f.SearchKeyword + "%"
		query = query.Where(
			"users.first_name LIKE ? OR users.last_name LIKE ? OR users.email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var rows []AdminUserRow
	if err := query.Order("users.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
