package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Bhargavvz/todoapp/models"
	"github.com/Bhargavvz/todoapp/services"
	"github.com/Bhargavvz/todoapp/utils/datetime"

	"github.com/gin-gonic/gin"
)

// todoDraft is the accepted request body for create and update. Server-assigned
// fields (id, createdAt, updatedAt) are not part of it.
type todoDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	DueDate     datetime.Time   `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
	Tags        models.Tags     `json:"tags"`
	Category    string          `json:"category"`
	Reminder    bool            `json:"reminder"`
	Notes       string          `json:"notes"`
}

func (d todoDraft) toModel() models.Todo {
	return models.Todo{
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		DueDate:     d.DueDate.Ptr(),
		Priority:    d.Priority,
		Tags:        d.Tags,
		Category:    d.Category,
		Reminder:    d.Reminder,
		Notes:       d.Notes,
	}
}

// RegisterTodoRoutes mounts the todo API on group. Failures not handled here are
// recorded with c.Error for middleware.ErrorHandler. wsService may be nil.
func RegisterTodoRoutes(group *gin.RouterGroup, todoService services.TodoServiceInterface, wsService services.WebSocketServiceInterface) {
	for _, root := range []string{"", "/"} {
		group.GET(root, func(c *gin.Context) { GetAllTodos(c, todoService) })
		group.POST(root, func(c *gin.Context) { CreateTodo(c, todoService) })
	}
	group.GET("/health", func(c *gin.Context) { HealthCheck(c, todoService) })
	group.GET("/due-before", func(c *gin.Context) { GetTodosDueBefore(c, todoService) })
	group.GET("/category/:category", func(c *gin.Context) { GetTodosByCategory(c, todoService) })
	group.GET("/priority/:priority", func(c *gin.Context) { GetTodosByPriority(c, todoService) })
	group.GET("/tags/:tag", func(c *gin.Context) { GetTodosByTag(c, todoService) })
	if wsService != nil {
		RegisterWebSocketRoutes(group, wsService)
	}
	group.GET("/:id", func(c *gin.Context) { GetTodoById(c, todoService) })
	group.PUT("/:id", func(c *gin.Context) { UpdateTodo(c, todoService) })
	group.DELETE("/:id", func(c *gin.Context) { DeleteTodo(c, todoService) })
}

func GetAllTodos(c *gin.Context, todoService services.TodoServiceInterface) {
	todos, err := todoService.GetAllTodos(c.Request.Context())
	respondWithList(c, todos, err)
}

// CreateTodo answers 200, not 201, with the stored todo.
func CreateTodo(c *gin.Context, todoService services.TodoServiceInterface) {
	var draft todoDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(fmt.Errorf("%w: %w", services.ErrValidation, err))
		return
	}

	created, err := todoService.CreateTodo(c.Request.Context(), draft.toModel())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func GetTodoById(c *gin.Context, todoService services.TodoServiceInterface) {
	todo, found, err := todoService.GetTodoById(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func UpdateTodo(c *gin.Context, todoService services.TodoServiceInterface) {
	var draft todoDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(fmt.Errorf("%w: %w", services.ErrValidation, err))
		return
	}

	updated, err := todoService.UpdateTodo(c.Request.Context(), c.Param("id"), draft.toModel())
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func DeleteTodo(c *gin.Context, todoService services.TodoServiceInterface) {
	if err := todoService.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

func GetTodosByCategory(c *gin.Context, todoService services.TodoServiceInterface) {
	todos, err := todoService.FindByCategory(c.Request.Context(), c.Param("category"))
	respondWithList(c, todos, err)
}

func GetTodosByPriority(c *gin.Context, todoService services.TodoServiceInterface) {
	priority, err := models.ParsePriority(c.Param("priority"))
	if err != nil {
		c.Error(err)
		return
	}

	todos, err := todoService.FindByPriority(c.Request.Context(), priority)
	respondWithList(c, todos, err)
}

func GetTodosDueBefore(c *gin.Context, todoService services.TodoServiceInterface) {
	raw, ok := c.GetQuery("date")
	if !ok {
		c.Error(fmt.Errorf("%w: query parameter date is required", services.ErrValidation))
		return
	}
	date, err := datetime.Parse(raw)
	if err != nil {
		c.Error(err)
		return
	}

	todos, err := todoService.FindByDueDateBefore(c.Request.Context(), date)
	respondWithList(c, todos, err)
}

func GetTodosByTag(c *gin.Context, todoService services.TodoServiceInterface) {
	todos, err := todoService.FindByTags(c.Request.Context(), c.Param("tag"))
	respondWithList(c, todos, err)
}

// HealthCheck probes the store with a full listing.
func HealthCheck(c *gin.Context, todoService services.TodoServiceInterface) {
	if _, err := todoService.GetAllTodos(c.Request.Context()); err != nil {
		c.String(http.StatusInternalServerError, "Connection failed: %s", err.Error())
		return
	}
	c.String(http.StatusOK, "Connection successful")
}

func respondWithList(c *gin.Context, todos []models.Todo, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}
