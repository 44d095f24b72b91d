package models

import (
	"errors"
	"strings"
)

// Role is the closed set of account kinds. Switches over Role must handle
// every constant below.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// legacyPatientAlias is the wire value older clients send for patients.
const legacyPatientAlias = "user"

var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	}
	return false
}

// ParseRole accepts only the canonical role values.
func ParseRole(value string) (Role, error) {
	role := Role(strings.TrimSpace(value))
	if !role.IsValid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// ParseSignupRole is ParseRole plus the legacy "user" alias for patients.
func ParseSignupRole(value string) (Role, error) {
	if strings.TrimSpace(value) == legacyPatientAlias {
		return RolePatient, nil
	}
	return ParseRole(value)
}
