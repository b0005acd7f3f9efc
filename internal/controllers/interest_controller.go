package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/store"
)

type InterestController struct {
	Store *store.Store
}

// Create records a non-binding interest by the authenticated user. No stock
// check: interests never touch produce quantity.
func (i *InterestController) Create(c *gin.Context) {
	var body struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interest := models.Interest{
		UserID:    middleware.UserID(c),
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	}
	if err := i.Store.Interests.Create(&interest); err != nil {
		if errors.Is(err, store.ErrDuplicateInterest) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("CreateInterest: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create interest"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"interest": interest})
}

// All returns every interest across communities (the unscoped admin view).
func (i *InterestController) All(c *gin.Context) {
	interests, err := i.Store.Interests.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch interests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

// Mine returns only the interests the calling user has expressed.
func (i *InterestController) Mine(c *gin.Context) {
	interests, err := i.Store.Interests.ByUser(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch interests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}
