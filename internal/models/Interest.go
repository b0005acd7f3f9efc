package models

import "gorm.io/gorm"

// Interest is a non-binding expression of desired quantity by an individual
// "User" account, visible to that community's Admin. Duplicates per
// user/product are allowed unless the store is configured otherwise.
type Interest struct {
	gorm.Model
	UserID    uint `json:"userId" gorm:"index"`
	ProductID uint `json:"productId" gorm:"index"`
	Quantity  int  `json:"quantity"`
}
