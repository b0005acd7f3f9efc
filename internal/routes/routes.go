package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"farmlink/internal/controllers"
	"farmlink/internal/middleware"
)

// Handlers bundles the constructed controllers the route files register.
type Handlers struct {
	Auth     *controllers.AuthController
	Farmer   *controllers.FarmerController
	User     *controllers.UserController
	Order    *controllers.OrderController
	Interest *controllers.InterestController
	Tracking *controllers.TrackingController
	Live     *controllers.LiveController

	Middleware *middleware.Auth
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, h)
	FarmerRoutes(r, h)
	UserRoutes(r, h)
	OrderRoutes(r, h)
	InterestRoutes(r, h)
	TrackingRoutes(r, h)
	LiveRoutes(r, h)

	return r
}
