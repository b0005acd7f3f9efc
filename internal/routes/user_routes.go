package routes

import (
	"github.com/gin-gonic/gin"

	"farmlink/internal/models"
)

func UserRoutes(r *gin.Engine, h Handlers) {
	user := r.Group("/user")
	user.Use(h.Middleware.RequireAuth())
	{
		user.GET("/nearby", h.User.Nearby)
		user.GET("/me", h.User.Me)
		user.PUT("/update", h.User.Update)
		user.DELETE("/delete", h.User.Delete)
	}

	admin := r.Group("/user/admin")
	admin.Use(h.Middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/interests", h.User.CommunityInterests)
	}
}
