package store

import (
	"errors"

	"gorm.io/gorm"

	"farmlink/internal/models"
)

type TrackingStore struct {
	db *gorm.DB
}

func (s *TrackingStore) ByOrder(orderID uint) (models.Tracking, error) {
	var tracking models.Tracking
	err := s.db.Where("order_id = ?", orderID).First(&tracking).Error
	return tracking, err
}

// Upsert sets the tracking status for an order, creating the row if the
// order somehow predates its tracking record.
func (s *TrackingStore) Upsert(orderID uint, status models.OrderStatus) (models.Tracking, error) {
	var tracking models.Tracking
	err := s.db.Where("order_id = ?", orderID).First(&tracking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tracking = models.Tracking{OrderID: orderID, Status: status}
		return tracking, s.db.Create(&tracking).Error
	}
	if err != nil {
		return tracking, err
	}
	tracking.Status = status
	return tracking, s.db.Save(&tracking).Error
}
