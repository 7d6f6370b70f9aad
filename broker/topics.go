package broker

import "strings"

const DefaultSubjectPrefix = "todos"

// Subject is the NATS subject an event of the given type is published on:
// <prefix>.<event type>, for example todos.todo.created.
func Subject(prefix string, event EventType) string {
	prefix = strings.Trim(prefix, ". ")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + "." + string(event)
}

// WildcardSubject matches every event published under prefix.
func WildcardSubject(prefix string) string {
	prefix = strings.Trim(prefix, ". ")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + ".>"
}
