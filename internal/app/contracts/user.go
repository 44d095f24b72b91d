package contracts

import (
	"context"
	"mindhaven-service/internal/app/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.CredentialUser) (string, error)
	FindPublicByID(ctx context.Context, userID string) (*models.PublicUser, error)
	FindPublicByEmail(ctx context.Context, email string) (*models.PublicUser, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*models.CredentialUser, error)
	FindDoctorsWithoutProfile(ctx context.Context) ([]models.PublicUser, error)
	SetActive(ctx context.Context, userID string, active bool) error
	EnsureIndexes(ctx context.Context) error
}
