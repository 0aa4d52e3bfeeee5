// Package entity contains the core business objects of the project.
package entity

// UserType represents the account type a user is registered with.
type UserType string

const (
	// UserTypeCustomer indicates an account that places orders and writes reviews.
	UserTypeCustomer UserType = "customer"
	// UserTypeBusiness indicates an account that creates offers and fulfills orders.
	UserTypeBusiness UserType = "business"
)

// String returns the string representation of the UserType.
func (t UserType) String() string {
	return string(t)
}

// IsValid checks if the UserType is a valid value.
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeCustomer, UserTypeBusiness:
		return true
	default:
		return false
	}
}
