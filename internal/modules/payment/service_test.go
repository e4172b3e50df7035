package payment

import (
	"context"
	"testing"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) CreateHistory(ctx context.Context, h *domain.PaymentHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *mockPaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PaymentHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentHistory), args.Error(1)
}

func (m *mockPaymentRepo) GetSubscription(ctx context.Context, id int64) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func TestService_Request_CreatesCheckingRow(t *testing.T) {
	userID := uuid.New()
	repo := new(mockPaymentRepo)

	repo.On("GetSubscription", mock.Anything, int64(2)).Return(&domain.Subscription{
		ID:    2,
		Name:  "PREMIUM1",
		Price: 14000,
	}, nil)
	repo.On("CreateHistory", mock.Anything, mock.MatchedBy(func(h *domain.PaymentHistory) bool {
		return h.UserID == userID &&
			h.SubscriptionID == 2 &&
			h.Price == 14000 &&
			h.Status == domain.PaymentStatusChecking
	})).Return(nil)

	service := NewService(repo)

	history, err := service.Request(context.Background(), userID, 2)
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusChecking, history.Status)
	repo.AssertExpectations(t)
}

func TestService_Request_UnknownSubscription(t *testing.T) {
	repo := new(mockPaymentRepo)
	repo.On("GetSubscription", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo)

	_, err := service.Request(context.Background(), uuid.New(), 99)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestService_ListMine(t *testing.T) {
	userID := uuid.New()
	repo := new(mockPaymentRepo)
	repo.On("ListByUser", mock.Anything, userID).Return([]domain.PaymentHistory{
		{UserID: userID, Price: 14000, Status: domain.PaymentStatusSuccess},
	}, nil)

	service := NewService(repo)

	histories, err := service.ListMine(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, histories, 1)
}
