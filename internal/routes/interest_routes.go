package routes

import (
	"github.com/gin-gonic/gin"

	"farmlink/internal/models"
)

func InterestRoutes(r *gin.Engine, h Handlers) {
	interest := r.Group("/interest")
	{
		interest.POST("", h.Middleware.RequireRoles(models.RoleUser), h.Interest.Create)
		interest.GET("", h.Middleware.RequireRoles(models.RoleAdmin), h.Interest.All)
		interest.GET("/mine", h.Middleware.RequireRoles(models.RoleUser), h.Interest.Mine)
	}
}
