package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Bhargavvz/todoapp/models"
	"github.com/Bhargavvz/todoapp/services"
	"github.com/Bhargavvz/todoapp/utils/datetime"

	"github.com/gin-gonic/gin"
)

// errorStatuses maps error kinds to status codes, first match wins.
var errorStatuses = []struct {
	kind   error
	status int
}{
	{services.ErrTodoNotFound, http.StatusNotFound},
	{services.ErrValidation, http.StatusBadRequest},
	{models.ErrInvalidPriority, http.StatusBadRequest},
	{datetime.ErrInvalidDateTime, http.StatusBadRequest},
}

// StatusFor returns the HTTP status for err. Unknown errors are 500.
func StatusFor(err error) int {
	for _, mapping := range errorStatuses {
		if errors.Is(err, mapping.kind) {
			return mapping.status
		}
	}
	return http.StatusInternalServerError
}

// ErrorHandler turns the last error a handler recorded with c.Error into the
// response, unless the handler already wrote one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)
		switch status {
		case http.StatusNotFound:
			c.Status(status)
		case http.StatusBadRequest:
			c.String(status, "Bad request: %s", err.Error())
		default:
			log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.String(status, "An error occurred: %s", err.Error())
		}
	}
}

// Recovery converts panics into the same 500 response as unhandled errors.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.String(http.StatusInternalServerError, "An error occurred: %s", fmt.Sprint(recovered))
		c.Abort()
	})
}
