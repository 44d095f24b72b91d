package contracts

import (
	"context"
	"mindhaven-service/internal/app/models"
)

// TokenService issues and checks bearer tokens. VerifyToken reports every
// failure as nil claims.
type TokenService interface {
	CreateToken(ctx context.Context, claims *models.SessionClaims) (string, error)
	VerifyToken(ctx context.Context, token string) *models.SessionClaims
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
