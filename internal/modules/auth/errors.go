package auth

import "errors"

var (
	ErrInvalidCredentials          = errors.New("invalid credentials")
	ErrInvalidToken                = errors.New("invalid token")
	ErrEmailTaken                  = errors.New("email already taken")
	ErrEmailNotRegistered          = errors.New("email not registered")
	ErrRefreshTokenNotValid        = errors.New("refresh token not valid")
	ErrRefreshTokenRequired        = errors.New("refresh token required")
	ErrAccountCreatedViaThirdParty = errors.New("account created via third party")
	ErrAccountCreatedByNormal      = errors.New("account created by normal method")
	ErrAccountSuspended            = errors.New("account suspended")
	ErrAccountNotActivated         = errors.New("account not activated")
	ErrAccountAlreadyActivated     = errors.New("account already activated")
)
