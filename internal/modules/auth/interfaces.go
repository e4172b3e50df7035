package auth

import (
	"context"
	"time"

	"dressup/internal/domain"
	jwtsvc "dressup/internal/pkg/jwt"

	"github.com/google/uuid"
)

// UserRepositoryInterface covers only the user-store methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Patch(ctx context.Context, id uuid.UUID, updates map[string]any) (*domain.User, error)
}

// RefreshTokenRepositoryInterface is the single-row-per-user token store.
type RefreshTokenRepositoryInterface interface {
	Upsert(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	ExpireByUser(ctx context.Context, userID uuid.UUID, expiresAt time.Time) error
}

type accessTokenIssuer interface {
	GenerateToken(u *domain.User) (string, error)
}

type actionTokenService interface {
	GenerateTokenWithTTL(u *domain.User, ttl time.Duration) (string, error)
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

// GoogleUserInfo is the subset of verified ID-token claims the service
// needs.
type GoogleUserInfo struct {
	Email      string
	GivenName  string
	FamilyName string
}

// TokenVerifier checks an ID token against the external identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleUserInfo, error)
}
