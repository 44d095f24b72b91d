package requests

import (
	"io"
	"mindhaven-service/internal/app/models"
)

type ListDoctors struct {
	Specialization string
	MinRating      *float64
	VerifiedOnly   bool
	Page           int
	Limit          int
}

// UpdateDoctorProfile distinguishes an absent field (nil) from a field set
// to its zero value.
type UpdateDoctorProfile struct {
	Specialization  *string                    `json:"specialization" validate:"omitnil,min=1,max=100"`
	LicenseNumber   *string                    `json:"licenseNumber" validate:"omitnil,min=1,max=50"`
	Qualification   *[]string                  `json:"qualification" validate:"omitnil,min=1,dive,min=1"`
	Experience      *int                       `json:"experience" validate:"omitnil,gte=0"`
	ConsultationFee *float64                   `json:"consultationFee" validate:"omitnil,gte=0"`
	AvailableSlots  *[]models.AvailabilitySlot `json:"availableSlots" validate:"omitnil,dive"`
	Bio             *string                    `json:"bio" validate:"omitnil,max=1000"`
	Services        *[]string                  `json:"services" validate:"omitnil,dive,min=1"`
}

type UploadVerificationDocument struct {
	File        io.Reader
	FileName    string
	ContentType string
	Size        int64
}
