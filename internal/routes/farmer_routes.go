package routes

import (
	"github.com/gin-gonic/gin"

	"farmlink/internal/models"
)

func FarmerRoutes(r *gin.Engine, h Handlers) {
	farmer := r.Group("/farmer")
	farmer.Use(h.Middleware.RequireAuth())
	{
		farmer.GET("", h.Farmer.ListProduce)
		farmer.GET("/orders", h.Farmer.FarmerOrders)
	}

	owner := r.Group("/farmer")
	owner.Use(h.Middleware.RequireRoles(models.RoleFarmer))
	{
		owner.POST("/create", h.Farmer.CreateProduce)
		owner.PUT("/update/:id", h.Farmer.UpdateProduce)
		owner.DELETE("/delete/:id", h.Farmer.DeleteProduce)
		owner.GET("/mine", h.Farmer.MyProduce)
	}
}
