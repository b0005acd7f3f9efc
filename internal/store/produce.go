package store

import (
	"gorm.io/gorm"

	"farmlink/internal/geo"
	"farmlink/internal/models"
)

type ProduceStore struct {
	db *gorm.DB
}

// ProduceWithFarmer is a listing annotated with the owning farmer's contact
// details and location, so the client can render distance-to-farmer markers.
type ProduceWithFarmer struct {
	models.Produce
	FarmerName        string    `json:"farmerName"`
	FarmerPhoneNumber string    `json:"farmerPhoneNumber"`
	FarmerLocation    geo.Point `json:"farmerLocation" gorm:"embedded;embeddedPrefix:farmer_location_"`
}

// AllWithFarmers lists every produce row across all farmers, joined with the
// owner's name, phone and coordinates.
func (s *ProduceStore) AllWithFarmers() ([]ProduceWithFarmer, error) {
	produce := make([]ProduceWithFarmer, 0)
	err := s.db.Table("produces").
		Select("produces.*, users.name AS farmer_name, users.phone_number AS farmer_phone_number, " +
			"users.location_lng AS farmer_location_lng, users.location_lat AS farmer_location_lat").
		Joins("JOIN users ON users.id = produces.farmer_id").
		Where("produces.deleted_at IS NULL").
		Scan(&produce).Error
	return produce, err
}

func (s *ProduceStore) FindByID(id uint) (models.Produce, error) {
	var produce models.Produce
	err := s.db.First(&produce, id).Error
	return produce, err
}

// FindOwned fetches a listing only if it belongs to farmerID. A missing row
// and a row owned by someone else are the same ErrRecordNotFound, so the
// caller cannot tell other farmers' listings apart from nothing.
func (s *ProduceStore) FindOwned(id, farmerID uint) (models.Produce, error) {
	var produce models.Produce
	err := s.db.Where("id = ? AND farmer_id = ?", id, farmerID).First(&produce).Error
	return produce, err
}

func (s *ProduceStore) ByFarmer(farmerID uint) ([]models.Produce, error) {
	produce := make([]models.Produce, 0)
	err := s.db.Where("farmer_id = ?", farmerID).Find(&produce).Error
	return produce, err
}

func (s *ProduceStore) Create(produce *models.Produce) error {
	return s.db.Create(produce).Error
}

func (s *ProduceStore) Save(produce *models.Produce) error {
	return s.db.Save(produce).Error
}

// DeleteCascade hard-deletes a listing together with every interest and
// order (and its tracking row) that references it. Hard, not soft: the point
// is that nothing dangles afterwards, at the cost of losing order history
// for the deleted listing.
func (s *ProduceStore) DeleteCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("produce_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Unscoped().Where("order_id IN ?", orderIDs).Delete(&models.Tracking{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("produce_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_id = ?", id).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Produce{}, id).Error
	})
}
