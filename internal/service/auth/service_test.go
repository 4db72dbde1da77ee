package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitehr/sitehr-backend-go/internal/domain/auth"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User // by ID
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "u-new"
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Active = active
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetPasswordHash(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

// fakeRefreshTokenStore mimics the persisted store: a token it has never
// seen counts as revoked, like a row-less lookup after a restart.
type fakeRefreshTokenStore struct {
	tokens  map[string]bool // token -> revoked
	userIDs map[string]string
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{
		tokens:  make(map[string]bool),
		userIDs: make(map[string]string),
	}
}

func (f *fakeRefreshTokenStore) Store(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.tokens[token] = false
	f.userIDs[token] = userID
	return nil
}

func (f *fakeRefreshTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, ok := f.tokens[token]
	if !ok {
		return true, nil
	}
	return revoked, nil
}

func (f *fakeRefreshTokenStore) Revoke(ctx context.Context, token string) error {
	if _, ok := f.tokens[token]; ok {
		f.tokens[token] = true
	}
	return nil
}

const testPassword = "rahasia-besar"

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *fakeRefreshTokenStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]user.User{
		"u-1": {
			ID:           "u-1",
			Email:        "siti@example.com",
			PasswordHash: string(hash),
			FullName:     "Siti Aminah",
			Role:         user.RoleStaff,
			Active:       true,
		},
	}}
	store := newFakeRefreshTokenStore()

	return &AuthServiceImpl{
		UserRepository: users,
		refreshTokens:  store,
		jwtService:     jwt.NewJWTService("test-secret", "15m", "720h"),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, store
}

func TestLoginStoresRefreshToken(t *testing.T) {
	svc, store := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "siti@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	revoked, err := store.IsRevoked(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, "u-1", store.userIDs[resp.RefreshToken])
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "siti@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRotationInvalidatesUsedToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "siti@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The spent token must not mint another session.
	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.RefreshToken(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsTokenMissingFromStore(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// A well-formed token with no persisted row must be refused.
	token, _, err := svc.jwtService.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
