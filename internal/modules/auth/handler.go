package auth

import (
	"errors"
	"net/http"
	"time"

	"dressup/internal/domain"
	"dressup/internal/middleware"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for registration and sessions
type Handler struct {
	service       *Service
	cookieName    string
	cookieTTL     time.Duration
	secureCookies bool
}

func NewHandler(service *Service, cookieName string, cookieTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		cookieName:    cookieName,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	users := v1.Group("/auth/users")
	{
		users.POST("", h.Register)
		users.POST("/activate/request", h.RequestActivation)
		users.POST("/activate", h.Activate)
		users.POST("/forgot-password", h.ForgotPassword)
		users.POST("/reset-password", h.ResetPassword)
		users.POST("/tokens", h.Login)
		users.POST("/tokens/google", h.GoogleLogin)
		users.PUT("/tokens", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.DELETE("/auth/users/tokens", h.Logout)
}

// Register creates a password account and triggers the activation email.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !ValidStrongPassword(req.Password) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be 6-128 characters with at least one digit and one special character")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "REGISTRATION_FAILED", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) RequestActivation(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RequestActivation(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err, "ACTIVATION_REQUEST_FAILED", "Failed to request activation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Activation email sent"})
}

func (h *Handler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Activate(c.Request.Context(), req.Token); err != nil {
		h.respondError(c, err, "ACTIVATION_FAILED", "Failed to activate account")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account activated"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err, "FORGOT_PASSWORD_FAILED", "Failed to send reset email")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Reset email sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !ValidStrongPassword(req.NewPassword) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be 6-128 characters with at least one digit and one special character")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.respondError(c, err, "RESET_PASSWORD_FAILED", "Failed to reset password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

// Login exchanges credentials for an access token plus a refresh-token
// cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, "LOGIN_FAILED", "Failed to log in")
		return
	}

	h.issueSession(c, user)
}

func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.AuthenticateGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		h.respondError(c, err, "GOOGLE_LOGIN_FAILED", "Failed to log in with Google")
		return
	}

	h.issueSession(c, user)
}

// Refresh rotates the refresh token. The token is read from the cookie
// first, then the body, so browser and non-browser clients both work.
func (h *Handler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if token == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	result, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusOK, TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.respondError(c, err, "LOGOUT_FAILED", "Failed to log out")
		return
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) issueSession(c *gin.Context, user *domain.User) {
	result, err := h.service.Login(c.Request.Context(), user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to issue session")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusOK, TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookies, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	// MaxAge -1 serializes as Max-Age=0, which actually deletes the cookie
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookies, true)
}

func (h *Handler) respondError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "EMAIL_TAKEN", "This email is already registered")
	case errors.Is(err, ErrEmailNotRegistered):
		response.Error(c, http.StatusBadRequest, "EMAIL_NOT_REGISTERED", "This email is not registered")
	case errors.Is(err, ErrAccountAlreadyActivated):
		response.Error(c, http.StatusBadRequest, "ALREADY_ACTIVATED", "Account is already activated")
	case errors.Is(err, ErrAccountCreatedViaThirdParty):
		response.Error(c, http.StatusBadRequest, "THIRD_PARTY_ACCOUNT", "Account was created via a third-party provider")
	case errors.Is(err, ErrAccountCreatedByNormal):
		response.Error(c, http.StatusBadRequest, "PASSWORD_ACCOUNT", "Account was created with email and password")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
	case errors.Is(err, ErrRefreshTokenNotValid), errors.Is(err, ErrRefreshTokenRequired):
		response.Error(c, http.StatusUnauthorized, "REFRESH_TOKEN_NOT_VALID", "Refresh token is missing, invalid or expired")
	case errors.Is(err, ErrAccountSuspended):
		response.Error(c, http.StatusForbidden, "ACCOUNT_SUSPENDED", "Account is suspended")
	case errors.Is(err, ErrAccountNotActivated):
		response.Error(c, http.StatusForbidden, "ACCOUNT_NOT_ACTIVATED", "Account is not activated")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
