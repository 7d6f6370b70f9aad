package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	EventMessage        WebSocketMessageType = "event"
	SubscribeMessage    WebSocketMessageType = "subscribe"
	UnsubscribeMessage  WebSocketMessageType = "unsubscribe"
	SubscriptionMessage WebSocketMessageType = "subscription"
	PingMessage         WebSocketMessageType = "ping"
	ErrorMessage        WebSocketMessageType = "error"
)

// StandardMessage is the envelope sent to live clients.
type StandardMessage struct {
	ID           string               `json:"id"`
	Type         WebSocketMessageType `json:"type"`
	Event        string               `json:"event,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
	Payload      interface{}          `json:"payload"`
	ResourceID   string               `json:"resource_id,omitempty"`
	ResourceType string               `json:"resource_type,omitempty"`
}

// ClientMessage is what live clients send to the server.
type ClientMessage struct {
	Type    WebSocketMessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

// SubscriptionPayload selects either every todo event (empty ID) or a single todo.
type SubscriptionPayload struct {
	Resource string `json:"resource"`
	ID       string `json:"id,omitempty"`
}

func NewStandardMessage(msgType WebSocketMessageType, event string, payload interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// WithResource adds resource information to the message
func (m *StandardMessage) WithResource(resourceType string, resourceID string) *StandardMessage {
	m.ResourceType = resourceType
	m.ResourceID = resourceID
	return m
}
