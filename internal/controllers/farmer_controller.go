package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/store"
)

type FarmerController struct {
	Store *store.Store
}

type createProduceInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity *int    `json:"quantity" binding:"required,gte=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
	ImageURL string  `json:"imageURL"`
}

// updateProduceInput carries partial updates; only supplied fields change.
type updateProduceInput struct {
	Name     *string  `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Unit     *string  `json:"unit"`
}

// ListProduce returns every listing with the farmer's contact details
// denormalized. Open to any authenticated role.
func (f *FarmerController) ListProduce(c *gin.Context) {
	produce, err := f.Store.Produce.AllWithFarmers()
	if err != nil {
		logrus.WithError(err).Error("ListProduce: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch produce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"produce": produce})
}

// CreateProduce adds a listing owned by the authenticated farmer.
func (f *FarmerController) CreateProduce(c *gin.Context) {
	var input createProduceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	produce := models.Produce{
		Name:     input.Name,
		Quantity: *input.Quantity,
		Price:    input.Price,
		Unit:     input.Unit,
		ImageURL: input.ImageURL,
		FarmerID: middleware.UserID(c),
	}
	if err := f.Store.Produce.Create(&produce); err != nil {
		logrus.WithError(err).Error("CreateProduce: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create produce"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"produce": produce})
}

// UpdateProduce applies a partial update to a listing the caller owns.
// Not-owned and not-found deliberately share one 403 response so listings of
// other farmers cannot be probed.
func (f *FarmerController) UpdateProduce(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid produce id"})
		return
	}

	produce, err := f.Store.Produce.FindOwned(id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized or produce not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	var input updateProduceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		produce.Name = *input.Name
	}
	if input.Quantity != nil {
		produce.Quantity = *input.Quantity
	}
	if input.Price != nil {
		produce.Price = *input.Price
	}
	if input.Unit != nil {
		produce.Unit = *input.Unit
	}

	if err := f.Store.Produce.Save(&produce); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update produce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"produce": produce})
}

// DeleteProduce removes a listing the caller owns and cascades to every
// interest, order and tracking row referencing it.
func (f *FarmerController) DeleteProduce(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid produce id"})
		return
	}

	produce, err := f.Store.Produce.FindOwned(id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized or produce not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	if err := f.Store.Produce.DeleteCascade(produce.ID); err != nil {
		logrus.WithError(err).Error("DeleteProduce: cascade failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete produce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"produce": produce})
}

// FarmerOrders lists orders placed against the caller's listings.
func (f *FarmerController) FarmerOrders(c *gin.Context) {
	orders, err := f.Store.Orders.ByFarmer(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// MyProduce lists the caller's own listings.
func (f *FarmerController) MyProduce(c *gin.Context) {
	produce, err := f.Store.Produce.ByFarmer(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch produce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"produce": produce})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
