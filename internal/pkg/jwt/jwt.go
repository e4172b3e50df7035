package jwt

import (
	"errors"
	"time"

	"dressup/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every signed token. The subject is the user's email;
// the flags let request authorization stay stateless.
type Claims struct {
	UserID      uuid.UUID `json:"id"`
	IsAdmin     bool      `json:"is_admin"`
	IsActive    bool      `json:"is_active"`
	IsActivated bool      `json:"is_activated"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a single secret. The API
// keeps one Service per purpose (access vs. emailed action tokens) so a
// token minted for one purpose never verifies for another.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(u *domain.User) (string, error) {
	return s.GenerateTokenWithTTL(u, s.ttl)
}

func (s *Service) GenerateTokenWithTTL(u *domain.User, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:      u.ID,
		IsAdmin:     u.IsAdmin(),
		IsActive:    u.IsActive,
		IsActivated: u.IsActivated,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   u.Email,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks signature and expiry; every failure collapses to
// ErrInvalidToken, callers never learn which check failed.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
