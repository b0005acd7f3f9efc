package store

import (
	"sort"

	"gorm.io/gorm"

	"farmlink/internal/geo"
	"farmlink/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

// NearbyUser is a user row annotated with its distance from the query
// center, in meters.
type NearbyUser struct {
	models.User
	Distance float64 `json:"distance"`
}

// geogExpr builds a geography point from the stored coordinate columns. The
// same expression backs the GiST index created at migration time, so
// ST_DWithin resolves through the index rather than a table scan.
const geogExpr = "ST_SetSRID(ST_MakePoint(location_lng, location_lat), 4326)::geography"
const centerExpr = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"

// Nearby returns users of the given role within radiusMeters of center,
// nearest first. On postgres this is a PostGIS index query; on any other
// dialect (the sqlite test database) it degrades to a role-filtered scan
// with the same contract.
func (s *UserStore) Nearby(center geo.Point, role string, radiusMeters float64) ([]NearbyUser, error) {
	if s.db.Dialector.Name() != "postgres" {
		return s.nearbyScan(center, role, radiusMeters)
	}

	query := "SELECT users.*, ST_Distance(" + geogExpr + ", " + centerExpr + ") AS distance" +
		" FROM users" +
		" WHERE users.deleted_at IS NULL AND users.role = ?" +
		" AND ST_DWithin(" + geogExpr + ", " + centerExpr + ", ?)" +
		" ORDER BY distance ASC"

	users := make([]NearbyUser, 0)
	err := s.db.Raw(query,
		center.Lng, center.Lat,
		role,
		center.Lng, center.Lat, radiusMeters,
	).Scan(&users).Error
	return users, err
}

func (s *UserStore) nearbyScan(center geo.Point, role string, radiusMeters float64) ([]NearbyUser, error) {
	var candidates []models.User
	if err := s.db.Where("role = ?", role).Find(&candidates).Error; err != nil {
		return nil, err
	}

	users := make([]NearbyUser, 0)
	for _, u := range candidates {
		d := geo.Haversine(center, u.Location) * 1000
		if d <= radiusMeters {
			users = append(users, NearbyUser{User: u, Distance: d})
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Distance < users[j].Distance })
	return users, nil
}

func (s *UserStore) FindByID(id uint) (models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return user, err
}

func (s *UserStore) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// MembersOf lists the "User" accounts belonging to a community.
func (s *UserStore) MembersOf(communityID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("community_id = ? AND role = ?", communityID, models.RoleUser).Find(&users).Error
	return users, err
}

func (s *UserStore) Save(user *models.User) error {
	return s.db.Save(user).Error
}

// Delete removes a user. When the user is an Admin their community goes
// with them; member users keep their dangling community id, as the original
// system did.
func (s *UserStore) Delete(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if user.Role == models.RoleAdmin {
			if err := tx.Where("owner_user_id = ?", user.ID).Delete(&models.Community{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
}
