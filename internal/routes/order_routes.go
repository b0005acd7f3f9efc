package routes

import (
	"github.com/gin-gonic/gin"

	"farmlink/internal/models"
)

func OrderRoutes(r *gin.Engine, h Handlers) {
	order := r.Group("/order")
	{
		order.GET("", h.Middleware.RequireAuth(), h.Order.List)
		order.POST("/:id", h.Middleware.RequireRoles(models.RoleAdmin), h.Order.Create)
		// Deliberately unscoped beyond authentication; see the permissive
		// transition contract on OrderController.UpdateStatus.
		order.PUT("/status", h.Middleware.RequireAuth(), h.Order.UpdateStatus)
	}
}
