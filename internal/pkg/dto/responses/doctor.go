package responses

import (
	"mindhaven-service/internal/app/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor renders userId as the joined owner when one was loaded and as the
// bare id otherwise.
type Doctor struct {
	ID                    primitive.ObjectID        `json:"_id"`
	UserID                interface{}               `json:"userId"`
	Specialization        string                    `json:"specialization"`
	LicenseNumber         string                    `json:"licenseNumber"`
	Qualification         []string                  `json:"qualification"`
	Experience            int                       `json:"experience"`
	ConsultationFee       float64                   `json:"consultationFee"`
	AvailableSlots        []models.AvailabilitySlot `json:"availableSlots"`
	Rating                float64                   `json:"rating"`
	TotalReviews          int                       `json:"totalReviews"`
	Bio                   string                    `json:"bio"`
	Services              []string                  `json:"services"`
	IsVerified            bool                      `json:"isVerified"`
	VerificationDocuments []string                  `json:"verificationDocuments"`
	CreatedAt             time.Time                 `json:"createdAt"`
	UpdatedAt             time.Time                 `json:"updatedAt"`
}

type DoctorList struct {
	Doctors    []Doctor   `json:"doctors"`
	Pagination Pagination `json:"pagination"`
}

func NewDoctor(doctor *models.Doctor, owner *models.DoctorOwner) *Doctor {
	var userID interface{} = doctor.UserID
	if owner != nil {
		userID = owner
	}
	slots := doctor.AvailableSlots
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}
	return &Doctor{
		ID:                    doctor.ID,
		UserID:                userID,
		Specialization:        doctor.Specialization,
		LicenseNumber:         doctor.LicenseNumber,
		Qualification:         emptyIfNil(doctor.Qualification),
		Experience:            doctor.Experience,
		ConsultationFee:       doctor.ConsultationFee,
		AvailableSlots:        slots,
		Rating:                doctor.Rating,
		TotalReviews:          doctor.TotalReviews,
		Bio:                   doctor.Bio,
		Services:              emptyIfNil(doctor.Services),
		IsVerified:            doctor.IsVerified,
		VerificationDocuments: emptyIfNil(doctor.VerificationDocuments),
		CreatedAt:             doctor.CreatedAt,
		UpdatedAt:             doctor.UpdatedAt,
	}
}

func NewDoctorFromDetail(detail *models.DoctorDetail) *Doctor {
	return NewDoctor(&detail.Doctor, detail.Owner)
}
