// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Every account is either a customer
// or a business user; the type is fixed at registration and never migrates.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Username  string    // Unique login/display handle.
	Email     string    // The user's primary contact email, unique across accounts.
	Type      UserType  // Account type: customer or business. Immutable after creation.
	IsStaff   bool      // Administrative flag; staff may delete orders.
	Profile   *Profile  // The 1:1 display profile, created together with the user.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// Profile is the 1:1 extension of a User holding optional display attributes.
// It is created empty at registration and mutable only by its owner.
type Profile struct {
	UserID       uuid.UUID // Foreign key linking this profile to its User.
	FirstName    string
	LastName     string
	File         string // Object key of the profile image in the blob bucket, empty if none.
	Location     string
	Tel          string
	Description  string
	WorkingHours string // Free-form label, e.g. "9-17".
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the profile's human-readable name, falling back to the
// username when no name parts are set.
func (u *User) DisplayName() string {
	if u.Profile != nil && (u.Profile.FirstName != "" || u.Profile.LastName != "") {
		if u.Profile.FirstName == "" {
			return u.Profile.LastName
		}
		if u.Profile.LastName == "" {
			return u.Profile.FirstName
		}

		return u.Profile.FirstName + " " + u.Profile.LastName
	}

	return u.Username
}
