package models

import (
	"gorm.io/gorm"

	"farmlink/internal/geo"
)

// Role values a user account can hold. Exactly one per user.
const (
	RoleFarmer = "Farmer"
	RoleAdmin  = "Admin"
	RoleUser   = "User"
)

// ValidRole reports whether role is one of the three account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"unique"`
	Password    string    `json:"-"`
	Role        string    `json:"role" gorm:"index"` // "Farmer", "Admin", "User"
	PhoneNumber string    `json:"phoneNumber"`
	Location    geo.Point `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	// Set only for the "User" role. Admins own a community through
	// Community.OwnerUserID instead; farmers belong to none.
	CommunityID *uint `json:"communityId,omitempty" gorm:"index"`
}
