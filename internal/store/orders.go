package store

import (
	"gorm.io/gorm"

	"farmlink/internal/models"
)

type OrderStore struct {
	db *gorm.DB
}

// OrderWithProduce is an order annotated with the listing's name for display.
type OrderWithProduce struct {
	models.Order
	ProduceName string `json:"produceName"`
}

func (s *OrderStore) All() ([]OrderWithProduce, error) {
	orders := make([]OrderWithProduce, 0)
	err := s.db.Table("orders").
		Select("orders.*, produces.name AS produce_name").
		Joins("JOIN produces ON produces.id = orders.produce_id").
		Where("orders.deleted_at IS NULL").
		Scan(&orders).Error
	return orders, err
}

func (s *OrderStore) ByFarmer(farmerID uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := s.db.Where("farmer_id = ?", farmerID).Find(&orders).Error
	return orders, err
}

func (s *OrderStore) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := s.db.First(&order, id).Error
	return order, err
}

// ExistsForCommunityProduce is the friendly pre-check for the one-order-per
// (community, produce) rule. The composite unique index remains the
// authority; a concurrent create that slips past this check still fails on
// insert.
func (s *OrderStore) ExistsForCommunityProduce(communityID, produceID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("community_id = ? AND produce_id = ?", communityID, produceID).
		Count(&count).Error
	return count > 0, err
}

// CreateWithTracking persists the order and its paired tracking record in
// one transaction, so there is never an order without tracking.
func (s *OrderStore) CreateWithTracking(order *models.Order) (models.Tracking, error) {
	var tracking models.Tracking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		tracking = models.Tracking{OrderID: order.ID, Status: order.Status}
		return tx.Create(&tracking).Error
	})
	return tracking, err
}

// UpdateStatus overwrites the order status and syncs the paired tracking
// row in the same transaction. No transition guard: any enumerated status is
// accepted from any state.
func (s *OrderStore) UpdateStatus(id uint, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		order.Status = status
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return tx.Model(&models.Tracking{}).
			Where("order_id = ?", id).
			Update("status", status).Error
	})
	return order, err
}
