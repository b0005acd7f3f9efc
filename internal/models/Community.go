package models

import (
	"gorm.io/gorm"
)

// Community is a named group of "User" accounts under one Admin.
// The name is globally unique and is what users supply to join at signup.
type Community struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex" binding:"required"`
	OwnerUserID uint   `json:"ownerUserId" gorm:"uniqueIndex"` // the Admin who created it
}
