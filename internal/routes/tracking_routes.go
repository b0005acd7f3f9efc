package routes

import (
	"github.com/gin-gonic/gin"
)

func TrackingRoutes(r *gin.Engine, h Handlers) {
	tracking := r.Group("/tracking")
	tracking.Use(h.Middleware.RequireAuth())
	{
		tracking.GET("/:orderId", h.Tracking.ByOrder)
		tracking.PUT("", h.Tracking.Update)
	}
}
