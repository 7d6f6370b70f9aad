package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TodoEvent describes a committed change to a todo. It is published to the
// message broker and to live websocket clients.
type TodoEvent struct {
	ID        uuid.UUID       `json:"id"`
	Event     string          `json:"event"`
	Version   int             `json:"version"`
	Entity    string          `json:"entity"`
	TodoID    string          `json:"todo_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func NewTodoEvent(event, todoID string, data interface{}) (*TodoEvent, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &TodoEvent{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		Entity:    "todo",
		TodoID:    todoID,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

func (e *TodoEvent) FromJSON(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e *TodoEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
