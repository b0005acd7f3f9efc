package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"farmlink/internal/models"
	"farmlink/internal/store"
)

type TrackingController struct {
	Store *store.Store
	Hub   *TrackingHub
}

// ByOrder returns the tracking record paired with an order.
func (t *TrackingController) ByOrder(c *gin.Context) {
	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	tracking, err := t.Store.Tracking.ByOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tracking info not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": tracking})
}

// Update upserts the tracking status for an existing order.
func (t *TrackingController) Update(c *gin.Context) {
	var input struct {
		OrderID uint               `json:"orderId" binding:"required"`
		Status  models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	order, err := t.Store.Orders.FindByID(input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	tracking, err := t.Store.Tracking.Upsert(order.ID, input.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update tracking"})
		return
	}

	t.Hub.Publish(OrderEvent{
		OrderID:     order.ID,
		CommunityID: order.CommunityID,
		Status:      tracking.Status,
		UpdatedAt:   tracking.UpdatedAt,
	})

	c.JSON(http.StatusOK, gin.H{"tracking": tracking})
}
