package routes

import (
	"github.com/gin-gonic/gin"
)

func LiveRoutes(r *gin.Engine, h Handlers) {
	// Token is validated from the query string inside the handler; websocket
	// handshakes cannot carry an Authorization header from the browser.
	r.GET("/live/orders", h.Live.Orders)
}
