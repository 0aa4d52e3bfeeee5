package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username  string    `gorm:"type:varchar(150);unique;not null"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Type      string    `gorm:"type:varchar(20);not null;index"`
	IsStaff   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile       *ProfileModel       `gorm:"foreignKey:UserID"`
	Credential    *CredentialModel    `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
// Every user owns exactly one row, created empty at registration.
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	File         string    `gorm:"type:varchar(255)"`
	Location     string    `gorm:"type:varchar(255)"`
	Tel          string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	WorkingHours string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
