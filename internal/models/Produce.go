// internal/models/produce.go
package models

import "gorm.io/gorm"

// Produce is a farmer's sellable listing. Quantity is remaining stock and is
// informational only: order and interest writes never decrement it.
type Produce struct {
	gorm.Model
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	ImageURL string  `json:"imageUrl"`
	FarmerID uint    `json:"farmerId" gorm:"index"` // owning farmer's user id
}
