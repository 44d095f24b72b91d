package utils

import (
	"mindhaven-service/internal/pkg/dto/requests"
	"strings"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, len(input))
	for i, v := range input {
		sanitizedArray[i] = strings.TrimSpace(v)
	}
	return sanitizedArray
}

func trimStringPointer(input *string) {
	if input != nil {
		*input = strings.TrimSpace(*input)
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func SanitizeSignupRequest(input *requests.Signup) {
	input.Email = NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.UserType = strings.ToLower(strings.TrimSpace(input.UserType))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = NormalizeEmail(input.Email)
}

func SanitizeUpdateDoctorProfileRequest(input *requests.UpdateDoctorProfile) {
	trimStringPointer(input.Specialization)
	trimStringPointer(input.LicenseNumber)
	trimStringPointer(input.Bio)
	if input.Qualification != nil {
		qualification := cleanWhiteSpaceFromEachStringOfAnArray(*input.Qualification)
		input.Qualification = &qualification
	}
	if input.Services != nil {
		services := cleanWhiteSpaceFromEachStringOfAnArray(*input.Services)
		input.Services = &services
	}
	if input.AvailableSlots != nil {
		for i := range *input.AvailableSlots {
			slot := &(*input.AvailableSlots)[i]
			slot.Day = strings.TrimSpace(slot.Day)
			slot.StartTime = strings.TrimSpace(slot.StartTime)
			slot.EndTime = strings.TrimSpace(slot.EndTime)
		}
	}
}
