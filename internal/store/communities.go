package store

import (
	"gorm.io/gorm"

	"farmlink/internal/models"
)

type CommunityStore struct {
	db *gorm.DB
}

func (s *CommunityStore) FindByName(name string) (models.Community, error) {
	var community models.Community
	err := s.db.Where("name = ?", name).First(&community).Error
	return community, err
}

// FindByOwner resolves the community an Admin owns.
func (s *CommunityStore) FindByOwner(userID uint) (models.Community, error) {
	var community models.Community
	err := s.db.Where("owner_user_id = ?", userID).First(&community).Error
	return community, err
}

func (s *CommunityStore) FindByID(id uint) (models.Community, error) {
	var community models.Community
	err := s.db.First(&community, id).Error
	return community, err
}
