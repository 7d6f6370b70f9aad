package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TodoCreated EventType = "todo.created"
	TodoUpdated EventType = "todo.updated"
	TodoDeleted EventType = "todo.deleted"
)

// EventTypes lists every event the service emits.
var EventTypes = []EventType{TodoCreated, TodoUpdated, TodoDeleted}
