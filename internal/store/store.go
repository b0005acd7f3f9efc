// Package store wraps the gorm queries behind per-entity types so handlers
// receive their data access injected instead of reaching for a global handle.
package store

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Store bundles the per-entity query types over one shared connection.
type Store struct {
	DB          *gorm.DB
	Users       *UserStore
	Communities *CommunityStore
	Produce     *ProduceStore
	Orders      *OrderStore
	Interests   *InterestStore
	Tracking    *TrackingStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:          db,
		Users:       &UserStore{db: db},
		Communities: &CommunityStore{db: db},
		Produce:     &ProduceStore{db: db},
		Orders:      &OrderStore{db: db},
		Interests:   &InterestStore{db: db},
		Tracking:    &TrackingStore{db: db},
	}
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Postgres surfaces code 23505 through lib/pq; the sqlite test database only
// gives us the message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
