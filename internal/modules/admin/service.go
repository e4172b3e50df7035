package admin

import (
	"context"
	"errors"

	"dressup/internal/domain"
	"dressup/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type AdminRepositoryInterface interface {
	ListUsers(ctx context.Context, f repository.AdminUserFilters) ([]repository.AdminUserRow, error)
}

type UserWriter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) (*domain.User, error)
}

// AdminUser is an account row as the admin panel sees it, with the paid
// total and the subscription tier derived from it.
type AdminUser struct {
	repository.AdminUserRow
	SubscriptionType domain.SubscriptionType `json:"subscription_type"`
}

type ListUsersQuery struct {
	SearchKeyword    string  `form:"search_keyword"`
	IsActive         *bool   `form:"is_active"`
	IsActivated      *bool   `form:"is_activated"`
	SubscriptionType *string `form:"subscription_type"`
}

// Service backs the admin panel's user listing and account state toggles.
type Service struct {
	admin AdminRepositoryInterface
	users UserWriter
}

func NewService(admin AdminRepositoryInterface, users UserWriter) *Service {
	return &Service{admin: admin, users: users}
}

// deriveSubscriptionType maps a user's paid total onto a tier. The totals
// are the known price points of the premium plans, monthly and yearly.
func deriveSubscriptionType(totalPaid int64) domain.SubscriptionType {
	switch totalPaid {
	case 14000, 17000:
		return domain.SubscriptionPremium1
	case 150000, 180000:
		return domain.SubscriptionPremium2
	default:
		return domain.SubscriptionFree
	}
}

func (s *Service) ListUsers(ctx context.Context, q ListUsersQuery) ([]AdminUser, error) {
	rows, err := s.admin.ListUsers(ctx, repository.AdminUserFilters{
		SearchKeyword: q.SearchKeyword,
		IsActive:      q.IsActive,
		IsActivated:   q.IsActivated,
	})
	if err != nil {
		return nil, err
	}

	out := make([]AdminUser, 0, len(rows))
	for _, row := range rows {
		tier := deriveSubscriptionType(row.TotalPaidAmount)
		if q.SubscriptionType != nil && string(tier) != *q.SubscriptionType {
			continue
		}
		out = append(out, AdminUser{AdminUserRow: row, SubscriptionType: tier})
	}
	return out, nil
}

func (s *Service) Suspend(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.setActive(ctx, userID, false)
}

func (s *Service) Restore(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.setActive(ctx, userID, true)
}

func (s *Service) setActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.users.Patch(ctx, userID, map[string]any{"is_active": active})
}
