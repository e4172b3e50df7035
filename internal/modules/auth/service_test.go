package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"dressup/internal/domain"
	jwtsvc "dressup/internal/pkg/jwt"
	"dressup/internal/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) (*domain.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Mock Refresh Token Repository
type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Upsert(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) ExpireByUser(ctx context.Context, userID uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, userID, expiresAt)
	return args.Error(0)
}

// Mock access-token issuer
type mockAccessIssuer struct {
	mock.Mock
}

func (m *mockAccessIssuer) GenerateToken(u *domain.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

// Mock Google verifier
type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleUserInfo), args.Error(1)
}

func newTestService(users *mockUserRepo, tokens *mockRefreshTokenRepo, access *mockAccessIssuer, verifier *mockVerifier) *Service {
	return NewService(
		users,
		tokens,
		access,
		jwtsvc.New("action-secret", 15*time.Minute),
		verifier,
		mailer.NewDevConsoleMailer(false),
		"http://localhost:3000",
		15*time.Minute,
		10*time.Minute,
		21*24*time.Hour,
	)
}

func strPtr(s string) *string { return &s }

func hashedPassword(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return strPtr(string(hash))
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)

	userRepo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(userRepo, tokenRepo, new(mockAccessIssuer), new(mockVerifier))

	user, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Test@Example.com",
		Password: "pass1!word",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, domain.AuthMethodNormal, user.AuthMethod)
	assert.False(t, user.IsActivated)
	if assert.NotNil(t, user.Password) {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte("pass1!word")))
	}

	userRepo.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "exists@example.com").Return(true, nil)

	service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "exists@example.com",
		Password: "pass1!word",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Authenticate(t *testing.T) {
	activeUser := func(password string) *domain.User {
		return &domain.User{
			ID:          uuid.New(),
			Email:       "user@example.com",
			Password:    hashedPassword(t, password),
			Role:        domain.RoleUser,
			IsActive:    true,
			IsActivated: true,
			AuthMethod:  domain.AuthMethodNormal,
		}
	}

	t.Run("success", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser("password1!"), nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		user, err := service.Authenticate(context.Background(), "user@example.com", "password1!")
		assert.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		_, err := service.Authenticate(context.Background(), "ghost@example.com", "whatever1!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser("password1!"), nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		_, err := service.Authenticate(context.Background(), "user@example.com", "wrong-pass1!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("google account", func(t *testing.T) {
		u := activeUser("password1!")
		u.AuthMethod = domain.AuthMethodGoogle
		u.Password = nil
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		_, err := service.Authenticate(context.Background(), "user@example.com", "password1!")
		assert.ErrorIs(t, err, ErrAccountCreatedViaThirdParty)
	})

	t.Run("suspended", func(t *testing.T) {
		u := activeUser("password1!")
		u.IsActive = false
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		_, err := service.Authenticate(context.Background(), "user@example.com", "password1!")
		assert.ErrorIs(t, err, ErrAccountSuspended)
	})

	t.Run("not activated", func(t *testing.T) {
		u := activeUser("password1!")
		u.IsActivated = false
		userRepo := new(mockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		_, err := service.Authenticate(context.Background(), "user@example.com", "password1!")
		assert.ErrorIs(t, err, ErrAccountNotActivated)
	})
}

func TestService_AuthenticateGoogle(t *testing.T) {
	t.Run("first login creates activated account", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		verifier := new(mockVerifier)

		verifier.On("Verify", mock.Anything, "good-token").Return(&GoogleUserInfo{
			Email:      "New@Example.com",
			GivenName:  "New",
			FamilyName: "User",
		}, nil)
		userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" &&
				u.AuthMethod == domain.AuthMethodGoogle &&
				u.IsActivated && u.IsActive && u.Password == nil
		})).Return(nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), verifier)

		user, err := service.AuthenticateGoogle(context.Background(), "good-token")
		assert.NoError(t, err)
		assert.Equal(t, "New", user.FirstName)
		userRepo.AssertExpectations(t)
	})

	t.Run("existing password account", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		verifier := new(mockVerifier)

		verifier.On("Verify", mock.Anything, "good-token").Return(&GoogleUserInfo{Email: "user@example.com"}, nil)
		userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
			Email:      "user@example.com",
			AuthMethod: domain.AuthMethodNormal,
			IsActive:   true,
		}, nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), verifier)

		_, err := service.AuthenticateGoogle(context.Background(), "good-token")
		assert.ErrorIs(t, err, ErrAccountCreatedByNormal)
	})

	t.Run("verifier failure collapses to invalid token", func(t *testing.T) {
		verifier := new(mockVerifier)
		verifier.On("Verify", mock.Anything, "bad-token").Return(nil, errors.New("upstream 400"))

		service := newTestService(new(mockUserRepo), new(mockRefreshTokenRepo), new(mockAccessIssuer), verifier)

		_, err := service.AuthenticateGoogle(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_IssueRefreshToken(t *testing.T) {
	tokenRepo := new(mockRefreshTokenRepo)
	tokenRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(new(mockUserRepo), tokenRepo, new(mockAccessIssuer), new(mockVerifier))

	userID := uuid.New()
	token, err := service.IssueRefreshToken(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, token.Token, 64)
	for _, r := range token.Token {
		assert.Contains(t, tokenAlphabet, string(r))
	}
	assert.Equal(t, userID, token.UserID)
	assert.WithinDuration(t, time.Now().Add(21*24*time.Hour), token.ExpiresAt, time.Minute)
	tokenRepo.AssertExpectations(t)
}

func TestService_ValidateRefreshToken(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		service := newTestService(new(mockUserRepo), new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))
		_, err := service.ValidateRefreshToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrRefreshTokenRequired)
	})

	t.Run("unknown", func(t *testing.T) {
		tokenRepo := new(mockRefreshTokenRepo)
		tokenRepo.On("GetByToken", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		service := newTestService(new(mockUserRepo), tokenRepo, new(mockAccessIssuer), new(mockVerifier))
		_, err := service.ValidateRefreshToken(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrRefreshTokenNotValid)
	})

	t.Run("expired", func(t *testing.T) {
		tokenRepo := new(mockRefreshTokenRepo)
		tokenRepo.On("GetByToken", mock.Anything, "old").Return(&domain.RefreshToken{
			Token:     "old",
			ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		service := newTestService(new(mockUserRepo), tokenRepo, new(mockAccessIssuer), new(mockVerifier))
		_, err := service.ValidateRefreshToken(context.Background(), "old")
		assert.ErrorIs(t, err, ErrRefreshTokenNotValid)
	})
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	userID := uuid.New()
	user := &domain.User{
		ID:          userID,
		Email:       "user@example.com",
		IsActive:    true,
		IsActivated: true,
	}

	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	access := new(mockAccessIssuer)

	tokenRepo.On("GetByToken", mock.Anything, "current").Return(&domain.RefreshToken{
		UserID:    userID,
		Token:     "current",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
	access.On("GenerateToken", user).Return("new-access", nil)
	tokenRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(tok *domain.RefreshToken) bool {
		return tok.UserID == userID && tok.Token != "current"
	})).Return(nil)

	service := newTestService(userRepo, tokenRepo, access, new(mockVerifier))

	result, err := service.Refresh(context.Background(), "current")
	assert.NoError(t, err)
	assert.Equal(t, "new-access", result.AccessToken)
	assert.NotEqual(t, "current", result.RefreshToken)
	tokenRepo.AssertExpectations(t)
}

func TestService_Logout_BackdatesExpiry(t *testing.T) {
	userID := uuid.New()
	tokenRepo := new(mockRefreshTokenRepo)
	tokenRepo.On("ExpireByUser", mock.Anything, userID, mock.MatchedBy(func(at time.Time) bool {
		return at.Before(time.Now())
	})).Return(nil)

	service := newTestService(new(mockUserRepo), tokenRepo, new(mockAccessIssuer), new(mockVerifier))

	assert.NoError(t, service.Logout(context.Background(), userID))
	tokenRepo.AssertExpectations(t)
}

func TestService_Activate(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "user@example.com"}
	actionJWT := jwtsvc.New("action-secret", 15*time.Minute)

	t.Run("valid token flips flag", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("Patch", mock.Anything, user.ID, map[string]any{"is_activated": true}).Return(user, nil)

		service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		token, err := actionJWT.GenerateTokenWithTTL(user, 15*time.Minute)
		assert.NoError(t, err)

		assert.NoError(t, service.Activate(context.Background(), token))
		userRepo.AssertExpectations(t)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		service := newTestService(new(mockUserRepo), new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		wrongSecret := jwtsvc.New("other-secret", 15*time.Minute)
		token, err := wrongSecret.GenerateTokenWithTTL(user, 15*time.Minute)
		assert.NoError(t, err)

		assert.ErrorIs(t, service.Activate(context.Background(), token), ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		service := newTestService(new(mockUserRepo), new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

		token, err := actionJWT.GenerateTokenWithTTL(user, -time.Minute)
		assert.NoError(t, err)

		assert.ErrorIs(t, service.Activate(context.Background(), token), ErrInvalidToken)
	})
}

func TestService_RequestActivation_AlreadyActivated(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "done@example.com").Return(&domain.User{
		ID:          uuid.New(),
		Email:       "done@example.com",
		IsActivated: true,
	}, nil)

	service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

	err := service.RequestActivation(context.Background(), "done@example.com")
	assert.ErrorIs(t, err, ErrAccountAlreadyActivated)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, new(mockRefreshTokenRepo), new(mockAccessIssuer), new(mockVerifier))

	err := service.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrEmailNotRegistered)
}

func TestValidStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"pass1!", true},
		{"Str0ng_p@ss", true},
		{"short", false},
		{"nodigits!", false},
		{"nospecials123", false},
		{"has spaces 1!", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidStrongPassword(tc.password), tc.password)
	}
}
