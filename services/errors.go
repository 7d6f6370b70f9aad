package services

import "errors"

// Common errors
var (
	ErrTodoNotFound        = errors.New("Todo not found")
	ErrValidation          = errors.New("validation error")
	ErrWebSocketConnection = errors.New("websocket connection error")
)
