package routes

import (
	"github.com/Bhargavvz/todoapp/middleware"
	"github.com/Bhargavvz/todoapp/services"

	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	Origins []string
	Debug   bool
}

// SetupRouter builds the engine serving /api/todos with recovery, request
// logging, CORS and error translation.
func SetupRouter(opts RouterOptions, todoService services.TodoServiceInterface, wsService services.WebSocketServiceInterface) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery(), middleware.CORSMiddleware(opts.Origins), middleware.ErrorHandler())

	RegisterTodoRoutes(router.Group("/api/todos"), todoService, wsService)
	if opts.Debug {
		SetupDebugRoutes(router, todoService, wsService)
	}
	return router
}
