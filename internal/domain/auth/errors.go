package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
	ErrEmailNotVerified    = errors.New("google account email is not verified")
)
