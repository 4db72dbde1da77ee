package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sitehr/sitehr-backend-go/internal/domain/auth"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/jwt"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
	logger        *slog.Logger
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	logger *slog.Logger,
) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		refreshTokens:  refreshTokenRepo,
		jwtService:     jwtService,
		googleService:  googleService,
		logger:         logger,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !u.Active {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, u)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) (string, error) {
	state := a.googleService.GenerateState(userAgent)
	if state == "" {
		return "", fmt.Errorf("failed to generate oauth state")
	}

	return a.googleService.RedirectURL(state), nil
}

// OAuthCallbackGoogle implements auth.AuthService. The Google account must
// already be linked to a user, or share a registered user's email.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidOAuthState
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrEmailNotVerified
	}

	u, err := a.UserRepository.GetByGoogleID(ctx, info.GoogleID)
	if errors.Is(err, user.ErrUserNotFound) {
		u, err = a.UserRepository.GetByEmail(ctx, info.Email)
		if err == nil {
			// First Google login for this account; link it.
			u.GoogleID = &info.GoogleID
			if updateErr := a.UserRepository.Update(ctx, u); updateErr != nil {
				a.logger.Warn("failed to link google account",
					slog.String("user_id", u.ID),
					slog.String("error", updateErr.Error()),
				)
			}
		}
	}
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user for google login: %w", err)
	}

	if !u.Active {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	return a.issueTokens(ctx, u)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if refreshToken == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.refreshTokens.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := a.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrTokenExpired
	}

	claims, err := decoded.AsMap(ctx)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if typ, ok := claims["type"].(string); !ok || typ != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user for token refresh: %w", err)
	}

	if !u.Active {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	// Rotate: the presented refresh token is dead once used.
	if err := a.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, u)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.refreshTokens.Revoke(ctx, refreshToken)
}

// CreateUser implements auth.AuthService.
func (a *AuthServiceImpl) CreateUser(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := a.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		EmployeeID:   req.EmployeeID,
		Active:       true,
	})
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(u), nil
}

// ListUsers implements auth.AuthService.
func (a *AuthServiceImpl) ListUsers(ctx context.Context, filter user.UserFilter) (auth.ListUsersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := a.UserRepository.List(ctx, filter)
	if err != nil {
		return auth.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := auth.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Users:      make([]auth.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}

	return resp, nil
}

// ActivateUser implements auth.AuthService.
func (a *AuthServiceImpl) ActivateUser(ctx context.Context, id string) error {
	return a.UserRepository.SetActive(ctx, id, true)
}

// DeactivateUser implements auth.AuthService.
func (a *AuthServiceImpl) DeactivateUser(ctx context.Context, id string) error {
	return a.UserRepository.SetActive(ctx, id, false)
}

// ResetPassword implements auth.AuthService. Admin-only; no current
// password required.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.UserRepository.SetPasswordHash(ctx, req.UserID, string(hash))
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.UserRepository.SetPasswordHash(ctx, u.ID, string(hash))
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.refreshTokens.Store(ctx, u.ID, refreshToken, refreshExp); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		User:         toUserResponse(u),
	}, nil
}

func toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
		Active:     u.Active,
	}
}
