package payment

import (
	"context"
	"errors"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type PaymentRepositoryInterface interface {
	CreateHistory(ctx context.Context, h *domain.PaymentHistory) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PaymentHistory, error)
	GetSubscription(ctx context.Context, id int64) (*domain.Subscription, error)
}

// Service records payment requests. Settlement happens out of band: rows
// are created as CHECKING and flipped by an operator.
type Service struct {
	payments PaymentRepositoryInterface
}

func NewService(payments PaymentRepositoryInterface) *Service {
	return &Service{payments: payments}
}

func (s *Service) Request(ctx context.Context, userID uuid.UUID, subscriptionID int64) (*domain.PaymentHistory, error) {
	sub, err := s.payments.GetSubscription(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	history := &domain.PaymentHistory{
		UserID:         userID,
		SubscriptionID: sub.ID,
		Price:          sub.Price,
		Status:         domain.PaymentStatusChecking,
	}
	if err := s.payments.CreateHistory(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.PaymentHistory, error) {
	return s.payments.ListByUser(ctx, userID)
}
