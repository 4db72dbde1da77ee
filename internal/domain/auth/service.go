package auth

import (
	"context"

	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
)

// AuthService defines authentication and user administration operations.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL string, err error)
	OAuthCallbackGoogle(ctx context.Context, code string) (LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context, filter user.UserFilter) (ListUsersResponse, error)
	ActivateUser(ctx context.Context, id string) error
	DeactivateUser(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
