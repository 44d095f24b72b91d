package contracts

import (
	"context"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error)
	FindDetailByID(ctx context.Context, doctorID string) (*models.DoctorDetail, error)
	FindDetailByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DoctorDetail, error)
	FindDetails(ctx context.Context, filter models.DoctorFilter, page, limit int) ([]models.DoctorDetail, error)
	CountDoctors(ctx context.Context, filter models.DoctorFilter) (int64, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch *models.DoctorPatch) (*models.Doctor, error)
	PushVerificationDocument(ctx context.Context, userID primitive.ObjectID, objectName string) (*models.Doctor, error)
	EnsureIndexes(ctx context.Context) error
}

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, request *requests.ListDoctors) (*responses.DoctorList, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	GetProfile(ctx context.Context, identity *models.PublicUser) (*responses.Doctor, error)
	UpdateProfile(ctx context.Context, identity *models.PublicUser, request *requests.UpdateDoctorProfile) (*responses.Doctor, error)
	UploadVerificationDocument(ctx context.Context, identity *models.PublicUser, request *requests.UploadVerificationDocument) (*responses.Doctor, error)
}
