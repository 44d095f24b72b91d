package doctors

import (
	"context"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewPlaceholderDoctor is the profile every doctor starts with until they
// fill it in.
func NewPlaceholderDoctor(userID primitive.ObjectID, now time.Time) *models.Doctor {
	return &models.Doctor{
		ID:                    primitive.NewObjectID(),
		UserID:                userID,
		Specialization:        constvars.DoctorPlaceholderSpecialization,
		LicenseNumber:         utils.GenerateTemporaryLicenseNumber(now, userID.Hex()),
		Qualification:         []string{constvars.DoctorPlaceholderQualification},
		AvailableSlots:        []models.AvailabilitySlot{},
		Services:              []string{},
		VerificationDocuments: []string{},
		TimeModel:             models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
}

type RepairFailure struct {
	UserID primitive.ObjectID
	Err    error
}

type RepairResult struct {
	Repaired []primitive.ObjectID
	Failed   []RepairFailure
}

// RepairMissingProfiles creates a placeholder profile for every doctor
// identity left without one by a non-transactional signup. A failure on one
// identity does not stop the others.
func RepairMissingProfiles(
	ctx context.Context,
	userRepository contracts.UserRepository,
	doctorRepository contracts.DoctorRepository,
	now func() time.Time,
) (*RepairResult, error) {
	orphans, err := userRepository.FindDoctorsWithoutProfile(ctx)
	if err != nil {
		return nil, err
	}

	result := &RepairResult{}
	for _, orphan := range orphans {
		placeholder := NewPlaceholderDoctor(orphan.ID, now())
		_, err := doctorRepository.CreateDoctor(ctx, placeholder)
		if err != nil {
			result.Failed = append(result.Failed, RepairFailure{UserID: orphan.ID, Err: err})
			continue
		}
		result.Repaired = append(result.Repaired, orphan.ID)
	}
	return result, nil
}
