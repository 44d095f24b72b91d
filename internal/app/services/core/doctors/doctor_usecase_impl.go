package doctors

import (
	"context"
	"fmt"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/dto/responses"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Storage          contracts.Storage
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository: doctorRepository,
		Storage:          storage,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

var allowedDocumentTypes = map[string]bool{
	constvars.MIMEApplicationPDF: true,
	constvars.MIMEImageJPEG:      true,
	constvars.MIMEImagePNG:       true,
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context, request *requests.ListDoctors) (*responses.DoctorList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	page, limit := utils.NormalizePagination(request.Page, request.Limit)
	filter := models.DoctorFilter{
		Specialization: request.Specialization,
		MinRating:      request.MinRating,
		VerifiedOnly:   request.VerifiedOnly,
	}

	details, err := uc.DoctorRepository.FindDetails(ctx, filter, page, limit)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	total, err := uc.DoctorRepository.CountDoctors(ctx, filter)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error counting doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctors := make([]responses.Doctor, 0, len(details))
	for i := range details {
		doctors = append(doctors, *responses.NewDoctorFromDetail(&details[i]))
	}

	uc.Log.Info("doctorUsecase.ListDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(doctors)),
	)
	return &responses.DoctorList{
		Doctors:    doctors,
		Pagination: utils.BuildPagination(page, limit, total),
	}, nil
}

func (uc *doctorUsecase) GetDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.GetDoctorByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	detail, err := uc.DoctorRepository.FindDetailByID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetDoctorByID error fetching doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if detail == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}

	uc.Log.Info("doctorUsecase.GetDoctorByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return responses.NewDoctorFromDetail(detail), nil
}

func (uc *doctorUsecase) GetProfile(ctx context.Context, identity *models.PublicUser) (*responses.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
	)

	detail, err := uc.DoctorRepository.FindDetailByUserID(ctx, identity.ID)
	if err != nil {
		uc.Log.Error("doctorUsecase.GetProfile error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if detail == nil {
		return nil, exceptions.ErrDoctorProfileNotExist(nil)
	}

	uc.Log.Info("doctorUsecase.GetProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return responses.NewDoctorFromDetail(detail), nil
}

// UpdateProfile writes only the fields present in request. A request with
// no fields returns the stored profile unchanged.
func (uc *doctorUsecase) UpdateProfile(ctx context.Context, identity *models.PublicUser, request *requests.UpdateDoctorProfile) (*responses.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
	)

	patch := &models.DoctorPatch{
		Specialization:  request.Specialization,
		LicenseNumber:   request.LicenseNumber,
		Qualification:   request.Qualification,
		Experience:      request.Experience,
		ConsultationFee: request.ConsultationFee,
		AvailableSlots:  request.AvailableSlots,
		Bio:             request.Bio,
		Services:        request.Services,
	}

	var (
		doctor *models.Doctor
		err    error
	)
	if patch.IsEmpty() {
		doctor, err = uc.DoctorRepository.FindByUserID(ctx, identity.ID)
	} else {
		doctor, err = uc.DoctorRepository.UpdateProfile(ctx, identity.ID, patch)
	}
	if err != nil {
		uc.Log.Error("doctorUsecase.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorProfileNotExist(nil)
	}

	utils.LogBusinessEvent(uc.Log, "doctor_profile_updated", requestID,
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID.Hex()),
	)
	return responses.NewDoctor(doctor, nil), nil
}

func (uc *doctorUsecase) UploadVerificationDocument(ctx context.Context, identity *models.PublicUser, request *requests.UploadVerificationDocument) (*responses.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.UploadVerificationDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
		zap.String("content_type", request.ContentType),
		zap.Int64("size", request.Size),
	)

	maxSize := uc.InternalConfig.Minio.MaxDocumentSizeInMB * 1024 * 1024
	if !allowedDocumentTypes[request.ContentType] {
		return nil, exceptions.ErrDocumentValidation(fmt.Errorf("content type %q is not allowed", request.ContentType))
	}
	if request.Size <= 0 || request.Size > maxSize {
		return nil, exceptions.ErrDocumentValidation(fmt.Errorf("size %d is outside (0, %d]", request.Size, maxSize))
	}

	existing, err := uc.DoctorRepository.FindByUserID(ctx, identity.ID)
	if err != nil {
		uc.Log.Error("doctorUsecase.UploadVerificationDocument error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrDoctorProfileNotExist(nil)
	}

	bucket := uc.InternalConfig.Minio.BucketVerificationDocuments
	objectName := utils.GenerateObjectName(identity.ID.Hex(), request.FileName)
	objectName, err = uc.Storage.UploadFile(ctx, bucket, objectName, request.File, request.Size, request.ContentType)
	if err != nil {
		uc.Log.Error("doctorUsecase.UploadVerificationDocument error uploading document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucket),
			zap.Error(err),
		)
		return nil, err
	}

	doctor, err := uc.DoctorRepository.PushVerificationDocument(ctx, identity.ID, objectName)
	if err != nil {
		uc.Log.Error("doctorUsecase.UploadVerificationDocument error recording document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorProfileNotExist(nil)
	}

	utils.LogBusinessEvent(uc.Log, "verification_document_uploaded", requestID,
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
		zap.String("object", objectName),
	)
	return responses.NewDoctor(doctor, nil), nil
}
