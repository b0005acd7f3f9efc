package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"farmlink/internal/middleware"
	"farmlink/internal/models"
	"farmlink/internal/store"
)

type OrderController struct {
	Store *store.Store
	Hub   *TrackingHub
}

// Create places a bulk order for the calling Admin's community against the
// produce listing named in the path. The paired tracking record is written
// in the same transaction.
func (o *OrderController) Create(c *gin.Context) {
	produceID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid produce id"})
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID := middleware.UserID(c)
	community, err := o.Store.Communities.FindByOwner(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	exists, err := o.Store.Orders.ExistsForCommunityProduce(community.ID, produceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "order already exists for this produce"})
		return
	}

	produce, err := o.Store.Produce.FindByID(produceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "produce not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	order := models.Order{
		CommunityID: community.ID,
		ProduceID:   produce.ID,
		FarmerID:    produce.FarmerID,
		OrderedBy:   adminID,
		Quantity:    body.Quantity,
		Status:      models.OrderPending,
	}
	tracking, err := o.Store.Orders.CreateWithTracking(&order)
	if err != nil {
		// The unique index is the authority on the one-order-per-listing
		// rule; a concurrent create that slipped past the pre-check lands
		// here.
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "order already exists for this produce"})
			return
		}
		logrus.WithError(err).Error("CreateOrder: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create order"})
		return
	}

	o.Hub.Publish(OrderEvent{
		OrderID:     order.ID,
		CommunityID: order.CommunityID,
		Status:      order.Status,
		UpdatedAt:   tracking.UpdatedAt,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"tracking": tracking,
	})
}

// List returns all orders enriched with the listing name.
func (o *OrderController) List(c *gin.Context) {
	orders, err := o.Store.Orders.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusInput struct {
	OrderID uint               `json:"orderId" binding:"required"`
	Status  models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus overwrites an order's status and syncs its tracking record.
// Any authenticated caller may set any enumerated status from any state.
func (o *OrderController) UpdateStatus(c *gin.Context) {
	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	order, err := o.Store.Orders.UpdateStatus(input.OrderID, input.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		} else {
			logrus.WithError(err).Error("UpdateStatus: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
		}
		return
	}

	o.Hub.Publish(OrderEvent{
		OrderID:     order.ID,
		CommunityID: order.CommunityID,
		Status:      order.Status,
		UpdatedAt:   order.UpdatedAt,
	})

	c.JSON(http.StatusOK, gin.H{"order": order})
}
