package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"farmlink/internal/geo"
	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/store"
)

type AuthController struct {
	Store *store.Store
	Auth  *middleware.Auth
}

type registerInput struct {
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Password      string    `json:"password" binding:"required"`
	Role          string    `json:"role" binding:"required"`
	PhoneNumber   string    `json:"phoneNumber" binding:"required"`
	Location      geo.Point `json:"location"`
	CommunityName string    `json:"communityName"`
}

// Register creates an account with exactly one role. Admins create the named
// community they will own; Users join an existing one by name; Farmers carry
// no community and must not name one.
func (a *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if input.Role == models.RoleFarmer {
		if input.CommunityName != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "community name should not be provided for farmers"})
			return
		}
	} else if input.CommunityName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "community name is required"})
		return
	}

	if _, err := a.Store.Users.FindByEmail(input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	// Users join by community name; resolve it before touching the database
	// for writes.
	var joined models.Community
	if input.Role == models.RoleUser {
		joined, err = a.Store.Communities.FindByName(input.CommunityName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
	}
	if input.Role == models.RoleAdmin {
		if _, err := a.Store.Communities.FindByName(input.CommunityName); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "community already exists"})
			return
		}
	}

	user := models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hash),
		Role:        input.Role,
		PhoneNumber: input.PhoneNumber,
		Location:    input.Location,
	}
	if input.Role == models.RoleUser {
		user.CommunityID = &joined.ID
	}

	tx := a.Store.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		logrus.WithError(err).Error("Register: could not create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	if input.Role == models.RoleAdmin {
		community := models.Community{Name: input.CommunityName, OwnerUserID: user.ID}
		if err := tx.Create(&community).Error; err != nil {
			tx.Rollback()
			if store.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "community already exists"})
				return
			}
			logrus.WithError(err).Error("Register: could not create community")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create community"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction"})
		return
	}

	token, err := a.Auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials and returns a fresh token.
func (a *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Store.Users.FindByEmail(body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		return
	}

	token, err := a.Auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
