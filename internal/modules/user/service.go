package user

import (
	"context"
	"encoding/json"

	"dressup/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) (*domain.User, error)
	CreateContact(ctx context.Context, contact *domain.Contact) error
}

// Service handles profile reads and field-by-field profile patches.
type Service struct {
	users UserRepositoryInterface
}

func NewService(users UserRepositoryInterface) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateMe writes only the fields present in the request. A password
// change is re-hashed; styles are stored JSON-encoded.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateMeRequest) (*domain.User, error) {
	updates := map[string]any{}

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Styles != nil {
		encoded, err := json.Marshal(*req.Styles)
		if err != nil {
			return nil, err
		}
		updates["styles"] = string(encoded)
	}
	if req.Bust != nil {
		updates["bust"] = *req.Bust
	}
	if req.Waist != nil {
		updates["waist"] = *req.Waist
	}
	if req.Hip != nil {
		updates["hip"] = *req.Hip
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Height != nil {
		updates["height"] = *req.Height
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	return s.users.Patch(ctx, userID, updates)
}

func (s *Service) CreateContact(ctx context.Context, userID uuid.UUID, message string) (*domain.Contact, error) {
	contact := &domain.Contact{
		UserID:  userID,
		Message: message,
	}
	if err := s.users.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}
