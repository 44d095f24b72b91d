package contracts

import (
	"context"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	GetCurrentUser(ctx context.Context, identity *models.PublicUser) (*responses.CurrentUser, error)
	DeactivateCurrentUser(ctx context.Context, identity *models.PublicUser) error
}
