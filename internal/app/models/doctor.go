package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	WeekdayMonday    = "Monday"
	WeekdayTuesday   = "Tuesday"
	WeekdayWednesday = "Wednesday"
	WeekdayThursday  = "Thursday"
	WeekdayFriday    = "Friday"
	WeekdaySaturday  = "Saturday"
	WeekdaySunday    = "Sunday"
)

var Weekdays = []string{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

type AvailabilitySlot struct {
	Day       string `json:"day" bson:"day" validate:"required,week_day"`
	StartTime string `json:"startTime" bson:"startTime" validate:"omitempty,clock_time"`
	EndTime   string `json:"endTime" bson:"endTime" validate:"omitempty,clock_time"`
}

type Doctor struct {
	ID                    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID                primitive.ObjectID `json:"userId" bson:"userId"`
	Specialization        string             `json:"specialization" bson:"specialization"`
	LicenseNumber         string             `json:"licenseNumber" bson:"licenseNumber"`
	Qualification         []string           `json:"qualification" bson:"qualification"`
	Experience            int                `json:"experience" bson:"experience"`
	ConsultationFee       float64            `json:"consultationFee" bson:"consultationFee"`
	AvailableSlots        []AvailabilitySlot `json:"availableSlots" bson:"availableSlots"`
	Rating                float64            `json:"rating" bson:"rating"`
	TotalReviews          int                `json:"totalReviews" bson:"totalReviews"`
	Bio                   string             `json:"bio" bson:"bio"`
	Services              []string           `json:"services" bson:"services"`
	IsVerified            bool               `json:"isVerified" bson:"isVerified"`
	VerificationDocuments []string           `json:"verificationDocuments" bson:"verificationDocuments"`
	TimeModel             `bson:",inline"`
}

// DoctorOwner is the slice of the owning identity joined into directory reads.
type DoctorOwner struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
}

// DoctorDetail is a Doctor with its owner joined in.
type DoctorDetail struct {
	Doctor `bson:",inline"`
	Owner  *DoctorOwner `bson:"owner,omitempty"`
}

type DoctorFilter struct {
	Specialization string
	MinRating      *float64
	VerifiedOnly   bool
}

// DoctorPatch holds the profile fields a doctor may change. Nil fields are
// left untouched by the update.
type DoctorPatch struct {
	Specialization  *string             `bson:"specialization,omitempty"`
	LicenseNumber   *string             `bson:"licenseNumber,omitempty"`
	Qualification   *[]string           `bson:"qualification,omitempty"`
	Experience      *int                `bson:"experience,omitempty"`
	ConsultationFee *float64            `bson:"consultationFee,omitempty"`
	AvailableSlots  *[]AvailabilitySlot `bson:"availableSlots,omitempty"`
	Bio             *string             `bson:"bio,omitempty"`
	Services        *[]string           `bson:"services,omitempty"`
}

func (p *DoctorPatch) IsEmpty() bool {
	return p.Specialization == nil &&
		p.LicenseNumber == nil &&
		p.Qualification == nil &&
		p.Experience == nil &&
		p.ConsultationFee == nil &&
		p.AvailableSlots == nil &&
		p.Bio == nil &&
		p.Services == nil
}
