package models

import "time"

// SessionClaims is the identity a bearer token vouches for. It is never
// persisted; the token service rebuilds it on every verification.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
