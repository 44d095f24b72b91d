package responses

import (
	"mindhaven-service/internal/app/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `json:"_id"`
	Email           string             `json:"email"`
	Name            string             `json:"name"`
	UserType        models.Role        `json:"userType"`
	Phone           string             `json:"phone,omitempty"`
	Address         string             `json:"address,omitempty"`
	DateOfBirth     *time.Time         `json:"dateOfBirth,omitempty"`
	Gender          string             `json:"gender,omitempty"`
	ProfileImage    string             `json:"profileImage,omitempty"`
	IsActive        bool               `json:"isActive"`
	IsEmailVerified bool               `json:"isEmailVerified"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// DoctorSummary is the profile excerpt attached to a login response.
type DoctorSummary struct {
	ID              primitive.ObjectID `json:"_id"`
	Specialization  string             `json:"specialization"`
	LicenseNumber   string             `json:"licenseNumber"`
	Qualification   []string           `json:"qualification"`
	Experience      int                `json:"experience"`
	ConsultationFee float64            `json:"consultationFee"`
	Rating          float64            `json:"rating"`
	TotalReviews    int                `json:"totalReviews"`
	Bio             string             `json:"bio"`
	IsVerified      bool               `json:"isVerified"`
}

// DoctorProfileSummary is the fuller excerpt returned by the current-user endpoint.
type DoctorProfileSummary struct {
	DoctorSummary
	AvailableSlots []models.AvailabilitySlot `json:"availableSlots"`
	Services       []string                  `json:"services"`
}

type LoggedInUser struct {
	User
	DoctorProfile *DoctorSummary `json:"doctorProfile"`
}

type CurrentUser struct {
	User
	UpdatedAt     time.Time             `json:"updatedAt"`
	DoctorProfile *DoctorProfileSummary `json:"doctorProfile"`
}

func NewUser(user *models.PublicUser) User {
	return User{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		UserType:        user.UserType,
		Phone:           user.Phone,
		Address:         user.Address,
		DateOfBirth:     user.DateOfBirth,
		Gender:          user.Gender,
		ProfileImage:    user.ProfileImage,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
}

func NewDoctorSummary(doctor *models.Doctor) *DoctorSummary {
	if doctor == nil {
		return nil
	}
	return &DoctorSummary{
		ID:              doctor.ID,
		Specialization:  doctor.Specialization,
		LicenseNumber:   doctor.LicenseNumber,
		Qualification:   emptyIfNil(doctor.Qualification),
		Experience:      doctor.Experience,
		ConsultationFee: doctor.ConsultationFee,
		Rating:          doctor.Rating,
		TotalReviews:    doctor.TotalReviews,
		Bio:             doctor.Bio,
		IsVerified:      doctor.IsVerified,
	}
}

func NewDoctorProfileSummary(doctor *models.Doctor) *DoctorProfileSummary {
	if doctor == nil {
		return nil
	}
	slots := doctor.AvailableSlots
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}
	return &DoctorProfileSummary{
		DoctorSummary:  *NewDoctorSummary(doctor),
		AvailableSlots: slots,
		Services:       emptyIfNil(doctor.Services),
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
