package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so logout and
// rotation survive a process restart. Implementations store a hash, never
// the raw token. A token the store does not know counts as revoked.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID string, token string, expiresAt int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}
