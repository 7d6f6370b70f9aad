package routes

import (
	"net/http"
	"time"

	"github.com/Bhargavvz/todoapp/services"

	"github.com/gin-gonic/gin"
)

// SetupDebugRoutes sets up routes for debugging. Mounted in development only.
func SetupDebugRoutes(router *gin.Engine, todoService services.TodoServiceInterface, wsService services.WebSocketServiceInterface) {
	debugGroup := router.Group("/api/debug")
	{
		debugGroup.GET("/todo-exists/:id", func(c *gin.Context) {
			todo, found, err := todoService.GetTodoById(c.Request.Context(), c.Param("id"))
			if err != nil {
				c.JSON(http.StatusOK, gin.H{
					"exists": false,
					"error":  err.Error(),
					"time":   time.Now(),
				})
				return
			}

			response := gin.H{
				"exists": found,
				"time":   time.Now(),
			}
			if found {
				response["id"] = todo.ID
				response["title"] = todo.Title
				response["updatedAt"] = todo.UpdatedAt
			}
			c.JSON(http.StatusOK, response)
		})

		debugGroup.GET("/ws-clients", func(c *gin.Context) {
			clients := 0
			if wsService != nil {
				clients = wsService.ClientCount()
			}
			c.JSON(http.StatusOK, gin.H{
				"clients": clients,
				"time":    time.Now(),
			})
		})
	}
}
