package model

// Role is the closed set of identities a user can hold.
type Role string

const (
	// RoleGuest is synthesized at session start and never persisted.
	RoleGuest Role = "guest"
	// RolePatron can review businesses and save favorites.
	RolePatron Role = "patron"
	// RoleOwner can additionally create and edit their own listings.
	RoleOwner Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RolePatron, RoleOwner:
		return true
	}
	return false
}

// Registrable reports whether r may be chosen at sign-up.
func (r Role) Registrable() bool {
	switch r {
	case RolePatron, RoleOwner:
		return true
	case RoleGuest:
		return false
	}
	return false
}

// CanContribute reports whether r may leave reviews, save favorites,
// or own listings. Guests can only browse.
func (r Role) CanContribute() bool {
	switch r {
	case RolePatron, RoleOwner:
		return true
	case RoleGuest:
		return false
	}
	return false
}

// User represents a registered account, or the transient guest identity.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         Role   `json:"role"`
	// Avatar is an opaque string: either a URL or an inline data URL.
	Avatar string `json:"avatar,omitempty"`
}

// GuestUser returns the transient guest identity. It is never written
// to the user record.
func GuestUser() User {
	return User{
		ID:    "guest",
		Name:  "Guest",
		Email: "guest",
		Role:  RoleGuest,
	}
}
