package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"dressup/internal/domain"
	"dressup/internal/pkg/mailer"
	"dressup/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	refreshTokenLength = 64
	// a logged-out token is pushed a day into the past so clock skew
	// between app servers can never resurrect it
	logoutBackdate = 24 * time.Hour
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Service contains all business logic for registration, sessions and the
// emailed account flows (activation, password reset).
type Service struct {
	users       UserRepositoryInterface
	tokens      RefreshTokenRepositoryInterface
	accessJWT   accessTokenIssuer
	actionJWT   actionTokenService
	verifier    TokenVerifier
	mailer      mailer.Mailer
	siteDomain  string
	activateTTL time.Duration
	resetTTL    time.Duration
	refreshTTL  time.Duration
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	accessJWT accessTokenIssuer,
	actionJWT actionTokenService,
	verifier TokenVerifier,
	m mailer.Mailer,
	siteDomain string,
	activateTTL time.Duration,
	resetTTL time.Duration,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		accessJWT:   accessJWT,
		actionJWT:   actionJWT,
		verifier:    verifier,
		mailer:      m,
		siteDomain:  siteDomain,
		activateTTL: activateTTL,
		resetTTL:    resetTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register creates a NORMAL account and fires the activation email in the
// background. A duplicate email surfaces as ErrEmailTaken whether it was
// caught by the pre-check or by the unique index.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:      email,
		Password:   &hashed,
		Role:       domain.RoleUser,
		IsActive:   true,
		AuthMethod: domain.AuthMethodNormal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sendActivationEmail(user)
	return user, nil
}

// RequestActivation re-sends the activation email for an existing,
// not-yet-activated account.
func (s *Service) RequestActivation(ctx context.Context, email string) error {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsActivated {
		return ErrAccountAlreadyActivated
	}

	s.sendActivationEmail(user)
	return nil
}

// Activate flips is_activated from an emailed action token. Replaying the
// token inside its TTL re-applies the same write, which is harmless.
func (s *Service) Activate(ctx context.Context, token string) error {
	claims, err := s.actionJWT.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	_, err = s.users.Patch(ctx, claims.UserID, map[string]any{"is_activated": true})
	return err
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	s.sendResetPasswordEmail(user)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.actionJWT.ValidateToken(req.Token)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.users.Patch(ctx, claims.UserID, map[string]any{"password": hashed})
	return err
}

// Authenticate checks email+password and the account gates, in that order:
// unknown email and bad password collapse into ErrInvalidCredentials, a
// Google-only account is rejected before the state gates, then suspension,
// then activation.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.AuthMethod != domain.AuthMethodNormal || user.Password == nil {
		return nil, ErrAccountCreatedViaThirdParty
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}
	if !user.IsActivated {
		return nil, ErrAccountNotActivated
	}

	return user, nil
}

// AuthenticateGoogle verifies the ID token with the provider and signs the
// user in, creating an activated GOOGLE account on first login. An existing
// password account with the same email is rejected rather than silently
// linked.
func (s *Service) AuthenticateGoogle(ctx context.Context, idToken string) (*domain.User, error) {
	info, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &domain.User{
			Email:       email,
			FirstName:   info.GivenName,
			LastName:    info.FamilyName,
			Role:        domain.RoleUser,
			IsActive:    true,
			IsActivated: true,
			AuthMethod:  domain.AuthMethodGoogle,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if user.AuthMethod != domain.AuthMethodGoogle {
		return nil, ErrAccountCreatedByNormal
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}

	return user, nil
}

// Login exchanges verified credentials for an access token and a fresh
// refresh token. Issuing replaces whatever refresh token the user held
// before, so each account has at most one live session.
func (s *Service) Login(ctx context.Context, user *domain.User) (*LoginResult, error) {
	accessToken, err := s.accessJWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refresh.Token}, nil
}

// Refresh validates the presented refresh token, then rotates it and mints
// a new access token. The upsert overwrites the stored value, so the old
// string stops validating the moment rotation commits.
func (s *Service) Refresh(ctx context.Context, token string) (*LoginResult, error) {
	current, err := s.ValidateRefreshToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotValid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}

	return s.Login(ctx, user)
}

// Logout expires the user's refresh token row in place. Missing row is a
// no-op so logout is idempotent.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.ExpireRefreshToken(ctx, userID)
}

// IssueRefreshToken mints a 64-char alphanumeric token and upserts it on
// user_id: one row per user, rotation is an overwrite.
func (s *Service) IssueRefreshToken(ctx context.Context, userID uuid.UUID) (*domain.RefreshToken, error) {
	raw, err := generateAlphanumeric(refreshTokenLength)
	if err != nil {
		return nil, err
	}

	token := &domain.RefreshToken{
		UserID:    userID,
		Token:     raw,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokens.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if token == "" {
		return nil, ErrRefreshTokenRequired
	}

	row, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotValid
		}
		return nil, err
	}
	if row.IsExpired(time.Now()) {
		return nil, ErrRefreshTokenNotValid
	}
	return row, nil
}

func (s *Service) ExpireRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.ExpireByUser(ctx, userID, time.Now().Add(-logoutBackdate))
}

func (s *Service) getByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotRegistered
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// sendActivationEmail mints the action token and mails it in the
// background. Delivery failures are logged and never reach the caller.
func (s *Service) sendActivationEmail(user *domain.User) {
	token, err := s.actionJWT.GenerateTokenWithTTL(user, s.activateTTL)
	if err != nil {
		log.Printf("auth: mint activation token user=%s err=%v", user.ID, err)
		return
	}
	url := fmt.Sprintf("%s/activate?token=%s", s.siteDomain, token)

	go func(email, name string) {
		if err := s.mailer.SendActivationEmail(context.Background(), email, name, url); err != nil {
			log.Printf("auth: send activation email=%s err=%v", email, err)
		}
	}(user.Email, user.FullName())
}

func (s *Service) sendResetPasswordEmail(user *domain.User) {
	token, err := s.actionJWT.GenerateTokenWithTTL(user, s.resetTTL)
	if err != nil {
		log.Printf("auth: mint reset token user=%s err=%v", user.ID, err)
		return
	}
	url := fmt.Sprintf("%s/reset-password?token=%s", s.siteDomain, token)

	go func(email, name string) {
		if err := s.mailer.SendResetPasswordEmail(context.Background(), email, name, url); err != nil {
			log.Printf("auth: send reset email=%s err=%v", email, err)
		}
	}(user.Email, user.FullName())
}

func generateAlphanumeric(n int) (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tokenAlphabet[idx.Int64()]
	}
	return string(b), nil
}
