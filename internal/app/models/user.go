package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicUser is the identity as every read path sees it. It has no
// password field, so it cannot leak the digest.
type PublicUser struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email           string             `json:"email" bson:"email"`
	Name            string             `json:"name" bson:"name"`
	UserType        Role               `json:"userType" bson:"userType"`
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address         string             `json:"address,omitempty" bson:"address,omitempty"`
	DateOfBirth     *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender          string             `json:"gender,omitempty" bson:"gender,omitempty"`
	ProfileImage    string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	IsEmailVerified bool               `json:"isEmailVerified" bson:"isEmailVerified"`
	TimeModel       `bson:",inline"`
}

// CredentialUser is only produced for password verification at login.
type CredentialUser struct {
	PublicUser   `bson:",inline"`
	PasswordHash string `json:"-" bson:"password"`
}
