package routes

import (
	"github.com/Bhargavvz/todoapp/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes mounts the live event stream at <group>/ws.
func RegisterWebSocketRoutes(group *gin.RouterGroup, wsService services.WebSocketServiceInterface) {
	group.GET("/ws", func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
