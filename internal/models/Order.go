package models

import "gorm.io/gorm"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the enumerated statuses.
// Any enumerated status may be set from any state; there are no transition
// guards on the status-update endpoint.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a binding bulk purchase an Admin places for their community
// against a produce listing. The (community, produce) pair is unique: a
// community cannot double-order the same listing, and the index is what
// enforces it, not the handler's pre-check.
type Order struct {
	gorm.Model
	CommunityID uint        `json:"communityId" gorm:"uniqueIndex:idx_orders_community_produce"`
	ProduceID   uint        `json:"produceId" gorm:"uniqueIndex:idx_orders_community_produce"`
	FarmerID    uint        `json:"farmerId" gorm:"index"` // denormalized from the produce at creation
	OrderedBy   uint        `json:"orderedBy"`             // the Admin who placed it
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status" gorm:"default:pending"`
}
