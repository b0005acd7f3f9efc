// internal/models/tracking.go
package models

import "gorm.io/gorm"

// Tracking is the delivery-status audit record paired 1:1 with an Order.
// It is created alongside the order at "pending" and kept in sync whenever
// the order status changes.
type Tracking struct {
	gorm.Model
	OrderID uint        `json:"orderId" gorm:"uniqueIndex"`
	Status  OrderStatus `json:"status"`
}
