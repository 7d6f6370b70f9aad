package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bhargavvz/todoapp/models"
	"github.com/Bhargavvz/todoapp/services"
	"github.com/Bhargavvz/todoapp/utils/datetime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(), ErrorHandler())
	router.GET("/test", handler)
	return router
}

func perform(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrTodoNotFound, http.StatusNotFound},
		{"validation", fmt.Errorf("%w: title", services.ErrValidation), http.StatusBadRequest},
		{"priority", fmt.Errorf("wrap: %w", models.ErrInvalidPriority), http.StatusBadRequest},
		{"date", datetime.ErrInvalidDateTime, http.StatusBadRequest},
		{"anything else", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(tt.err))
		})
	}
}

func TestErrorHandler_BadRequest(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		_, err := models.ParsePriority("urgent")
		c.Error(err)
	})

	w := perform(router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Bad request: invalid priority")
}

func TestErrorHandler_NotFoundHasEmptyBody(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(services.ErrTodoNotFound)
	})

	w := perform(router)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorHandler_InternalError(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(errors.New("server selection timeout"))
	})

	w := perform(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred: server selection timeout", w.Body.String())
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(errors.New("logged only"))
		c.String(http.StatusOK, "fine")
	})

	w := perform(router)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}

func TestRecovery(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		panic("nil map write")
	})

	w := perform(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred: nil map write", w.Body.String())
}
