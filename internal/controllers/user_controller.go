package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"farmlink/internal/geo"
	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/store"
)

// nearbyRadiusMeters is the fixed matching radius. Not caller-configurable.
const nearbyRadiusMeters = 10000.0

type UserController struct {
	Store *store.Store
}

// Nearby returns users of the requested role within 10 km of the supplied
// point, nearest first, each annotated with its distance in meters.
func (u *UserController) Nearby(c *gin.Context) {
	lngRaw := c.Query("longitude")
	latRaw := c.Query("latitude")
	role := c.Query("role")
	if lngRaw == "" || latRaw == "" || role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters"})
		return
	}

	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	users, err := u.Store.Users.Nearby(geo.Point{Lng: lng, Lat: lat}, role, nearbyRadiusMeters)
	if err != nil {
		logrus.WithError(err).Error("Nearby: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch nearby users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CommunityInterests returns the interests expressed by members of the
// community the calling Admin owns, denormalized for display. An admin who
// somehow owns no community gets a 404, which is distinct from an empty
// list for a community with zero interests.
func (u *UserController) CommunityInterests(c *gin.Context) {
	adminID := middleware.UserID(c)

	community, err := u.Store.Communities.FindByOwner(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	members, err := u.Store.Users.MembersOf(community.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	memberIDs := make([]uint, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	interests, err := u.Store.Interests.ByUsers(memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

// Me returns the authenticated user's own record.
func (u *UserController) Me(c *gin.Context) {
	user, err := u.Store.Users.FindByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateUserInput struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email"`
	PhoneNumber *string    `json:"phoneNumber"`
	Password    *string    `json:"password"`
	Location    *geo.Point `json:"location"`
}

// Update applies a partial update to the caller's own profile.
func (u *UserController) Update(c *gin.Context) {
	user, err := u.Store.Users.FindByID(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		user.Password = string(hash)
	}

	if err := u.Store.Users.Save(&user); err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete removes the caller's account. An Admin's community goes with them.
func (u *UserController) Delete(c *gin.Context) {
	user, err := u.Store.Users.FindByID(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := u.Store.Users.Delete(&user); err != nil {
		logrus.WithError(err).Error("Delete: could not remove user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
