package store

import (
	"errors"

	"gorm.io/gorm"

	"farmlink/internal/models"
)

// ErrDuplicateInterest is returned by Create when duplicate suppression is
// enabled and the user already expressed interest in the product.
var ErrDuplicateInterest = errors.New("interest already expressed for this product")

type InterestStore struct {
	db *gorm.DB

	// AllowDuplicates keeps the original permissive behavior: a user may
	// express interest in the same product any number of times. Set false
	// to reject repeats.
	AllowDuplicates bool
}

// InterestDetail is an interest row denormalized with the expressing user's
// contact details and the product summary, the shape the admin dashboard
// renders.
type InterestDetail struct {
	models.Interest
	UserName        string  `json:"userName"`
	UserPhoneNumber string  `json:"userPhoneNumber"`
	ProduceName     string  `json:"produceName"`
	ProducePrice    float64 `json:"producePrice"`
	ProduceUnit     string  `json:"produceUnit"`
}

func (s *InterestStore) Create(interest *models.Interest) error {
	if !s.AllowDuplicates {
		var count int64
		err := s.db.Model(&models.Interest{}).
			Where("user_id = ? AND product_id = ?", interest.UserID, interest.ProductID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateInterest
		}
	}
	return s.db.Create(interest).Error
}

func (s *InterestStore) detailQuery() *gorm.DB {
	return s.db.Table("interests").
		Select("interests.*, users.name AS user_name, users.phone_number AS user_phone_number, " +
			"produces.name AS produce_name, produces.price AS produce_price, produces.unit AS produce_unit").
		Joins("JOIN users ON users.id = interests.user_id").
		Joins("JOIN produces ON produces.id = interests.product_id").
		Where("interests.deleted_at IS NULL")
}

// ByUsers returns detailed interests expressed by any of the given users.
// This is the community-scoping primitive: the caller passes the member ids
// of exactly one community.
func (s *InterestStore) ByUsers(userIDs []uint) ([]InterestDetail, error) {
	interests := make([]InterestDetail, 0)
	if len(userIDs) == 0 {
		return interests, nil
	}
	err := s.detailQuery().Where("interests.user_id IN ?", userIDs).Scan(&interests).Error
	return interests, err
}

// ByUser returns the interests a single user has expressed.
func (s *InterestStore) ByUser(userID uint) ([]InterestDetail, error) {
	interests := make([]InterestDetail, 0)
	err := s.detailQuery().Where("interests.user_id = ?", userID).Scan(&interests).Error
	return interests, err
}

// All returns every interest across all communities (the unscoped admin
// listing).
func (s *InterestStore) All() ([]InterestDetail, error) {
	interests := make([]InterestDetail, 0)
	err := s.detailQuery().Scan(&interests).Error
	return interests, err
}
